// Package mongo is the MongoDB snapshot engine.
package mongo

import (
	"io"
	"log"
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/blitline-dev/batik/timer"
)

type Engine struct {
	session    *mgo.Session
	database   string
	pingTicker *timer.Timer
}

func Open(addr, dbname, user, password string) (*Engine, error) {
	log.Printf("Connecting MongoDB %s ...", addr)
	session, err := mgo.Dial("mongodb://" + addr + "/")
	if err != nil {
		return nil, err
	}

	db := session.DB(dbname)
	if user != "" {
		if err = db.Login(user, password); err != nil {
			return nil, err
		}
	}

	session.SetMode(mgo.Strong, true)

	pingTicker := timer.AddTicker(10*time.Second, func() {
		session.Ping()
	})

	return &Engine{
		session:    session,
		database:   dbname,
		pingTicker: pingTicker,
	}, nil
}

func (e *Engine) Write(col, id string, snap map[string]string) error {
	c := e.getCollection(col)
	_, err := c.UpsertId(id, bson.M{"attrs": snap})
	c.Database.Session.Close()
	return err
}

func (e *Engine) Read(col, id string) (map[string]string, error) {
	c := e.getCollection(col)
	var doc struct {
		Attrs map[string]string `bson:"attrs"`
	}
	err := c.FindId(id).One(&doc)
	c.Database.Session.Close()

	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return doc.Attrs, nil
}

func (e *Engine) Del(col, id string) error {
	c := e.getCollection(col)
	err := c.RemoveId(id)
	c.Database.Session.Close()
	if err == mgo.ErrNotFound {
		return nil
	}
	return err
}

func (e *Engine) Exists(col, id string) (bool, error) {
	c := e.getCollection(col)
	n, err := c.FindId(id).Count()
	c.Database.Session.Close()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (e *Engine) getCollection(col string) *mgo.Collection {
	ses := e.session.Copy()
	return ses.DB(e.database).C(col)
}

func (e *Engine) Close() {
	e.session.Close()
	if e.pingTicker != nil {
		e.pingTicker.Cancel()
	}
}

func (e *Engine) IsEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
