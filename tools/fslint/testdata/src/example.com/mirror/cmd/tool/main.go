package main

import "os"

func main() {
	_ = os.WriteFile("schema.json", nil, 0o644)
}
