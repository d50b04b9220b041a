package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"

	"golang.org/x/net/netutil"
)

func main() {
	var (
		port           int
		minViewers     int
		maxConnections int
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&minViewers, "min-viewers", 2, "minimum viewers per match, filled with bots")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.Parse()

	if minViewers < 0 {
		log.Fatal("invalid argument min-viewers: ", minViewers)
	}

	host := NewHost(minViewers)

	http.HandleFunc("/ws", host.ServeWs)
	http.HandleFunc("/status", host.ServeStatus)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Println("arenahost: listening on", port)
	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}
