package main

import "github.com/DimitrijeDobrota/startgit/cmd"

func main() {
	cmd.Execute()
}
