package main

import "teamtasks.com/teamtasks/cmd"

func main() {
	cmd.Execute()
}
