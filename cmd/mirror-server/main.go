package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

func main() {
	// serves a dataset file at GET /api/all.json, the same path as the CDN
	dataPath := flag.String("data", "data/all.json", "dataset JSON file")
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	http.HandleFunc("/api/all.json", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate JSON so bad file doesn't silently break
		var tmp []json.RawMessage
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, "dataset is not a JSON array: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	log.Printf("mirror-server listening on http://localhost%s/api/all.json", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
