package main

import (
	"github.com/Suleiman-Moraes/device-api/internal/runtime"
)

func main() {
	runtime.New().Run()
}
