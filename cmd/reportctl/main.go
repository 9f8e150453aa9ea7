// Package main - reportctl, выгрузка отчётов из командной строки.
package main

func main() {
	Execute()
}
