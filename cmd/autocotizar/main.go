package main

import "autocotizar/go_backend/internal/app"

func main() {
	app.Run()
}
