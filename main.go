/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/SAIRAKSHAAN1/gemini-chatbot/cmd"

func main() {
	cmd.Execute()
}
