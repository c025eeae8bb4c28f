/*
Copyright © 2023 Microsoft Corporation
*/
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("Failed to patch track")
		os.Exit(1)
	}
}
