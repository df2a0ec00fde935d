//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type PostgresLogin struct {
	Host   string `yaml:"Host"`
	Port   int    `yaml:"Port"`
	User   string `yaml:"User"`
	Pass   string `yaml:"Pass"`
	DBName string `yaml:"DBName"`
}
