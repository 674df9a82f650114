package main

import (
	"github.com/sjzar/sipconfig/cmd/sipconfig"
)

func main() {
	sipconfig.Execute()
}
