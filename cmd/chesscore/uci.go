package main

import (
	"github.com/daystram/chesscore/uci"
)

func runUCI() error {
	return uci.NewInterface().Run()
}
