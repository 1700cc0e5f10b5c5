package main

import "eatery-scraper/commands"

func main() {
	commands.Execute()
}
