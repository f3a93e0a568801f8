package main

import "fitplan_backend/internal/app"

func main() {
	app.Run()
}
