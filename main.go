/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/V2Tn/KimTamCatCRM/cmd"

func main() {
	cmd.Execute()
}
