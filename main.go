package main

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/app"
)

func main() {
	// setup and run app
	err := app.SetupAndRunServer()
	if err != nil {
		log.Fatal(err)
	}
}
