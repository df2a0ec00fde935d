//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/e-gun/retrofitter/internal/str"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGURL - the connection string for a login
func PGURL(pl str.PostgresLogin, mn, mx int) string {
	const (
		UTPL = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
	)
	return fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, mn, mx)
}

// FillDBConnectionPool - build the pgxpool that the store will Acquire() from
func FillDBConnectionPool(ctx context.Context, cfg *str.CurrentConfiguration) (*pgxpool.Pool, error) {
	const (
		FAIL1   = "Configuration error. Could not execute ParseConfig(url) for %s@%s:%d/%s"
		FAIL2   = "Could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is configuration problem; see the following response from PostgreSQL:`
	)

	// one run writes once and reads once: a small pool is plenty
	mn := 1
	mx := 2
	if cfg.WorkerCount > mx {
		mx = cfg.WorkerCount
	}

	pl := cfg.PGLogin
	config, e := pgxpool.ParseConfig(PGURL(pl, mn, mx))
	if e != nil {
		// the url holds the password: do not echo it
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, pl.Port, pl.DBName)
	}

	thepool, e := pgxpool.NewWithConfig(ctx, config)
	if e == nil {
		e = thepool.Ping(ctx)
		if e != nil {
			thepool.Close()
		}
	}
	if e != nil {
		Msg.MAND(FAIL2)
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.MAND(fmt.Sprintf(FAILRUN, ERRRUN, pl.Port))
		}
		if strings.Contains(e.Error(), ERRSRV) {
			Msg.MAND(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.SplitN(e.Error(), ERRSRV, 2)
			Msg.CRIT(parts[1])
		}
		return nil, errors.Join(errors.New(FAIL2), e)
	}
	return thepool, nil
}
