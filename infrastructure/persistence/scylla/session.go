package scylla

import (
	"strings"

	"github.com/gocql/gocql"

	"userstore/infrastructure/config"
)

// NewSession establishes the shared store session. gocql sessions are safe
// for concurrent reuse, so one session serves every in-flight request for
// the lifetime of the process.
func NewSession(cfg *config.Config) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.StoreHosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = parseConsistency(cfg.Consistency)
	cluster.Timeout = cfg.StoreTimeout

	return cluster.CreateSession()
}

// parseConsistency maps the configured consistency name onto the driver
// constant, defaulting to quorum for anything unrecognized.
func parseConsistency(name string) gocql.Consistency {
	c, err := gocql.ParseConsistencyWrapper(strings.ToUpper(name))
	if err != nil {
		return gocql.Quorum
	}
	return c
}
