package main

import (
	"log"
	"time"

	"github.com/blitline-dev/batik"
	"github.com/blitline-dev/batik/anim"
	"github.com/blitline-dev/batik/db"
	"github.com/blitline-dev/batik/evq"
	"github.com/blitline-dev/batik/example/conf"
	"github.com/blitline-dev/batik/timer"
)

func main() {
	timer.StartTicks(10 * time.Millisecond)

	cfg := conf.Load("conf/config.toml")
	client, err := db.GetOrNewClient(cfg.DBConfig)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	doc := batik.NewDocument()
	var text *batik.Element
	var x *batik.AnimatedLengthList

	evq.Sync(func() {
		var err error
		text, err = doc.CreateElement("text1", "text")
		if err != nil {
			log.Fatalf("create element: %v", err)
		}
		text.SetAttr("", "x", "10, 20, 30")

		x = batik.NewAnimatedLengthList(text, batik.Ident{
			LocalName:    "x",
			EmptyAllowed: true,
			Axis:         batik.AxisHorizontal,
		})
		x.Subscribe(func() {
			items, err := x.AnimVal().Items()
			if err != nil {
				log.Printf("x changed, unreadable: %v", err)
				return
			}
			log.Printf("x changed: %v (override=%v)", items, x.HasAnimatedValue())
		})

		n, err := x.BaseVal().Count()
		if err != nil {
			log.Fatalf("read base value: %v", err)
		}
		log.Printf("base value has %d items", n)
	})

	// Slide every coordinate 40 units to the right, then let the base value
	// show through again.
	done := make(chan struct{})
	evq.Sync(func() {
		from, err := x.BaseVal().Items()
		if err != nil {
			log.Fatalf("read base value: %v", err)
		}
		to := append([]batik.Length(nil), from...)
		for i := range to {
			to[i].Value += 40
		}
		if _, err := anim.Start(x, from, to, 300*time.Millisecond, 20*time.Millisecond,
			anim.WithOnDone(func() { close(done) })); err != nil {
			log.Fatalf("start animation: %v", err)
		}
	})
	<-done

	// Edit the base value through the list API and persist the element.
	var snap db.Snapshot
	evq.Sync(func() {
		if _, err := x.BaseVal().AppendItem(batik.Length{Unit: batik.UnitEms, Value: 1.5}); err != nil {
			log.Fatalf("append item: %v", err)
		}
		snap = text.Snapshot()
	})

	if err := client.Save("doc", text.ID(), snap, true); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}
	loaded, err := client.Load("doc", text.ID())
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	log.Printf("stored snapshot: %v", loaded)

	db.Shutdown()
}
