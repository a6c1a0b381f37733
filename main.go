package main

import (
	"house-auction-api/app"
)

func main() {
	app.Run()
}
