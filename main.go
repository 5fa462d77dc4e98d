package main

import "github.com/KimDantic/Worklog/cmd"

func main() {
	cmd.Execute()
}
