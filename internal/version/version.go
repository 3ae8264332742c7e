// Package version хранит сведения о сборке, заполняемые через -ldflags.
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

// Version возвращает только номер версии (для /healthz).
func Version() string { return version }

func String() string {
	return fmt.Sprintf("easyorder version=%s commit=%s date=%s", version, commit, date)
}
