//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/str"
	"github.com/e-gun/retrofitter/internal/vv"
	"gopkg.in/yaml.v3"
)

var (
	Msg = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
)

// ConfigDir - "~/.config/retrofitter"
func ConfigDir() (string, error) {
	h, e := os.UserHomeDir()
	if e != nil {
		return "", errors.New("cannot find UserHomeDir")
	}
	return filepath.Clean(fmt.Sprintf(vv.CONFIGALTAPTH, h)), nil
}

// DefaultConfigPath - "~/.config/retrofitter/retrofitter-conf.json"
func DefaultConfigPath() (string, error) {
	d, e := ConfigDir()
	if e != nil {
		return "", e
	}
	return filepath.Join(d, vv.CONFIGBASIC), nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.Alpha = vv.DEFAULTALPHA
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CacheSize = vv.VECTORCACHESIZE
	c.EchoLog = 0
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.Iterations = vv.DEFAULTITERATIONS
	c.Language = vv.DEFAULTLANGUAGE
	c.Lexicon = vv.DEFAULTLEXICON
	c.LexiconPath = ""
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.PPDBEng = vv.PPDBENG
	c.PPDBFra = vv.PPDBFRA
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.SQLitePath = vv.DEFAULTSQLITEDB
	c.Store = vv.DEFAULTSTORE
	c.UpdateMode = vv.DEFAULTUPDATEMODE
	c.VectorChtHt = vv.CHARTHEIGHT
	c.VectorChtWd = vv.CHARTWIDTH
	c.VectorNeighb = vv.VECTORNEIGHBORS
	c.WordNetDB = vv.WORDNETDB
	c.WorkerCount = runtime.NumCPU()

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}
	return &c
}

func isyaml(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig - defaults overlaid with the contents of a JSON or YAML file; an empty path means the default
// location, which may be absent; a named file that is absent is an error
func LoadConfig(path string) (*str.CurrentConfiguration, error) {
	const (
		FAIL1 = "could not parse '%s': %w"
		FAIL2 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		MSG1  = "No configuration file at '%s'; using built-in defaults"
		MSG2  = "Read configuration from '%s'"
	)

	cfg := BuildDefaultConfig()

	explicit := path != ""
	if !explicit {
		p, e := DefaultConfigPath()
		if e != nil {
			Msg.PEEK(e.Error())
			return cfg, nil
		}
		path = p
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			Msg.PEEK(fmt.Sprintf(MSG1, path))
			return cfg, nil
		}
		return nil, err
	}

	if isyaml(path) {
		err = yaml.Unmarshal(content, cfg)
	} else {
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf(FAIL1, path, err)
	}
	Msg.PEEK(fmt.Sprintf(MSG2, path))

	if cfg.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL2, cfg.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		cfg.WorkerCount = runtime.NumCPU()
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return cfg, nil
}

// WriteDefaultConfig - write the built-in defaults to a path (JSON, or YAML by extension); the directory is
// created if need be; an existing file is not overwritten
func WriteDefaultConfig(path string) error {
	const (
		FAIL1 = "refusing to overwrite '%s'"
		MSG1  = "Wrote default configuration to '%s'"
	)
	if gen.FileExists(path) {
		return fmt.Errorf(FAIL1, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), vv.DIRPERMS); err != nil {
		return err
	}

	var content []byte
	var err error
	if isyaml(path) {
		content, err = yaml.Marshal(BuildDefaultConfig())
	} else {
		content, err = json.MarshalIndent(BuildDefaultConfig(), vv.JSONINDENT, vv.JSONINDENT)
	}
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, content, vv.WRITEPERMS); err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG1, path))
	return nil
}
