//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// CurrentConfiguration - every tunable; read from JSON or YAML and then overridden by command flags
type CurrentConfiguration struct {
	Alpha         float64       `yaml:"Alpha"`
	BlackAndWhite bool          `yaml:"BlackAndWhite"`
	CacheSize     int           `yaml:"CacheSize"`
	EchoLog       int           `yaml:"EchoLog"` // 0: "none", 1: "terse", 2: "prolix"
	HostIP        string        `yaml:"HostIP"`
	HostPort      int           `yaml:"HostPort"`
	Iterations    int           `yaml:"Iterations"`
	Language      string        `yaml:"Language"`
	Lexicon       string        `yaml:"Lexicon"`
	LexiconPath   string        `yaml:"LexiconPath"`
	LogLevel      int           `yaml:"LogLevel"`
	PGLogin       PostgresLogin `yaml:"PGLogin"`
	PPDBEng       string        `yaml:"PPDBEng"`
	PPDBFra       string        `yaml:"PPDBFra"`
	ProfileCPU    bool          `yaml:"ProfileCPU"`
	ProfileMEM    bool          `yaml:"ProfileMEM"`
	SQLitePath    string        `yaml:"SQLitePath"`
	Store         string        `yaml:"Store"` // "none", "sqlite", "psql"
	UpdateMode    string        `yaml:"UpdateMode"`
	VectorChtHt   string        `yaml:"VectorChtHt"`
	VectorChtWd   string        `yaml:"VectorChtWd"`
	VectorNeighb  int           `yaml:"VectorNeighb"`
	WordNetDB     string        `yaml:"WordNetDB"`
	WorkerCount   int           `yaml:"WorkerCount"`
}
