package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// RequireEnv returns the value of a mandatory variable and panics when it is
// unset, so a misconfigured function fails on cold start.
func RequireEnv(name string) string {
	v := os.Getenv(name)
	if IsBlank(v) {
		panic(fmt.Sprintf("%s is empty", name))
	}
	return v
}

func EnvOr(name string, def string) string {
	v := os.Getenv(name)
	if IsBlank(v) {
		return def
	}
	return v
}

// EnvHours reads a whole number of hours, falling back to def when the
// variable is unset or not a positive integer.
func EnvHours(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if IsBlank(v) {
		return def
	}
	hours, err := strconv.Atoi(v)
	if err != nil || hours <= 0 {
		return def
	}
	return time.Duration(hours) * time.Hour
}

// EnvLocation loads an IANA zone, using the process local zone when the
// variable is unset.
func EnvLocation(name string) (*time.Location, error) {
	v := os.Getenv(name)
	if IsBlank(v) {
		return time.Local, nil
	}
	return time.LoadLocation(v)
}
