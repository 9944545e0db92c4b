package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	root, a := newRootCmd()
	if err := root.Execute(); err != nil {
		log := logrus.StandardLogger()
		if a.log != nil {
			log = a.log
		}
		log.WithError(err).Error("pokesim failed")
		os.Exit(1)
	}
}
