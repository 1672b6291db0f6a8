package db

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Target says which database to open and how to reach it.
type Target struct {
	Driver Driver
	// DSN is the gorm DSN: a postgres URL or key=value list, or a SQLite path.
	DSN string
}

var (
	kvPairRegex   = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)
	kvPasswordRgx = regexp.MustCompile(`(?i)(password=)(\S+)`)
)

// ResolveTarget picks the database from DATABASE_URL, falling back to a
// SQLite file at sqlitePath when the URL is empty.
//
// Accepted URL forms: postgres://..., postgresql://..., a lib/pq key=value
// list, and sqlite://path (sqlite:///rel.db and sqlite:////abs.db are read
// the SQLAlchemy way).
func ResolveTarget(databaseURL, sqlitePath string) (Target, error) {
	s := strings.Trim(strings.TrimSpace(databaseURL), "\"'")
	lower := strings.ToLower(s)
	switch {
	case s == "":
		if strings.TrimSpace(sqlitePath) == "" {
			return Target{}, errors.New("neither DATABASE_URL nor SQLITE_PATH is set")
		}
		return Target{Driver: DriverSQLite, DSN: strings.TrimSpace(sqlitePath)}, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Target{Driver: DriverPostgres, DSN: s}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		path := strings.TrimPrefix(s[len("sqlite://"):], "/")
		if path == "" {
			return Target{}, fmt.Errorf("sqlite url %q has no path", s)
		}
		return Target{Driver: DriverSQLite, DSN: path}, nil
	case kvPairRegex.MatchString(s):
		cleaned := strings.Join(strings.Fields(s), " ")
		if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
			cleaned += " sslmode=disable"
		}
		return Target{Driver: DriverPostgres, DSN: cleaned}, nil
	}
	return Target{}, fmt.Errorf("unsupported DATABASE_URL %q", Target{Driver: DriverPostgres, DSN: s}.Masked())
}

// MigrateURL returns the URL golang-migrate expects for this target.
func (t Target) MigrateURL() string {
	if t.Driver == DriverSQLite {
		return "sqlite3://" + t.DSN
	}
	return toURLDSN(t.DSN)
}

// Masked returns the DSN with any password hidden, for logs.
func (t Target) Masked() string {
	if t.Driver == DriverSQLite {
		return t.DSN
	}
	if u, err := url.Parse(t.DSN); err == nil && u.Scheme != "" {
		return u.Redacted()
	}
	return kvPasswordRgx.ReplaceAllString(t.DSN, `${1}***`)
}

func toURLDSN(kvDSN string) string {
	lower := strings.ToLower(kvDSN)
	if kvDSN == "" || strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return kvDSN
	}
	m := map[string]string{}
	for _, part := range strings.Fields(kvDSN) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = kv[1]
		}
	}
	host, user, dbname := m["host"], m["user"], m["dbname"]
	if host == "" || user == "" || dbname == "" {
		return kvDSN
	}
	u := &url.URL{Scheme: "postgres", Host: host, Path: "/" + dbname}
	if port := m["port"]; port != "" {
		u.Host = host + ":" + port
	}
	if pass := m["password"]; pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	if sslm, ok := m["sslmode"]; ok {
		u.RawQuery = url.Values{"sslmode": {sslm}}.Encode()
	}
	return u.String()
}
