package flagx

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// lookupEnv is a seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// EnvString overwrites *dst with the value of key when the variable is set
// and non-empty.
func EnvString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// EnvDuration overwrites *dst with a time.ParseDuration value of key.
func EnvDuration(dst *time.Duration, key string) error {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// EnvInt overwrites *dst with an integer value of key.
func EnvInt(dst *int, key string) error {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
