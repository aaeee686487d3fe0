package main

import (
	_ "github.com/inkstonehq/inkstone/src/migration"
	"github.com/inkstonehq/inkstone/src/store"
)

func main() {
	store.StoreCommand.Execute()
}
