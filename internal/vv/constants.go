//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Retrofitter"
	SHORTNAME = "RTF"
	VERSION   = "0.2.1"

	BLACKANDWHITE     = false
	CONFIGALTAPTH     = "%s/.config/retrofitter/" // %s = os.UserHomeDir()
	CONFIGBASIC       = "retrofitter-conf.json"
	CONFIGSTOPSENG    = "retrofitter-stops-eng.json"
	CONFIGSTOPSFRA    = "retrofitter-stops-fra.json"
	DEFAULTGOLOGLEVEL = 2
	DEFAULTLANGUAGE   = "eng"
	DEFAULTPSQLHOST   = "127.0.0.1"
	DEFAULTPSQLUSER   = "hippa_wr"
	DEFAULTPSQLPORT   = 5432
	DEFAULTPSQLDB     = "hipparchiaDB"
	DEFAULTSQLITEDB   = "retrofitter.db"
	JSONINDENT        = "  "
	MAXECHOREQPERSEC  = 60
	READPERMS         = 0400
	SERVEDFROMHOST    = "127.0.0.1"
	SERVEDFROMPORT    = 8010
	TIMEOUTRD         = 15 * time.Second
	TIMEOUTWR         = 60 * time.Second
	WRITEPERMS        = 0600
	DIRPERMS          = 0750
)
