package main

import (
	"fmt"
	"os"

	"github.com/avamsi/ergo/assert"

	"github.com/viif/xsf-skip-list/display"
	"github.com/viif/xsf-skip-list/skiplist"
	"github.com/viif/xsf-skip-list/snapshot"
)

func main() {
	sl := skiplist.New[int, string](6, skiplist.WithSeed(1))

	sl.Put(1, "one")
	sl.Put(3, "three")
	sl.Put(7, "seven")
	sl.Put(8, "eight")
	sl.Put(9, "nine")
	sl.Put(19, "nineteen")
	sl.Put(19, "nineteen again")

	fmt.Println("size:", sl.Size())

	if v, ok := sl.Get(9); ok {
		fmt.Println("get 9:", v)
	}
	if _, ok := sl.Get(18); !ok {
		fmt.Println("get 18: not found")
	}

	sl.Remove(3)
	sl.Remove(7)
	fmt.Println("size after remove:", sl.Size())

	display.Render(os.Stdout, sl)

	assert.Nil(snapshot.Dump(snapshot.DefaultPath, sl.All()))

	restored := skiplist.New[int, string](6)
	loaded := assert.Ok(snapshot.Load(snapshot.DefaultPath, snapshot.Int, snapshot.String, restored))
	fmt.Printf("loaded %d entries from %s\n", loaded, snapshot.DefaultPath)

	for k, v := range restored.All() {
		fmt.Printf("%d:%s\n", k, v)
	}
}
