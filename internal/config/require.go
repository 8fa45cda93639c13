package config

import (
	"fmt"
	"log"
)

// NonEmpty reports a missing required env var.
func NonEmpty(value, envName string) error {
	if value == "" {
		return fmt.Errorf("missing required env %s", envName)
	}
	return nil
}

func MustNonEmpty(value, envName string) {
	must(NonEmpty(value, envName))
}

func MustNonEmptyBytes(value []byte, envName string) {
	must(NonEmpty(string(value), envName))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
