package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Seeds a running server with a document corpus. The corpus file is a JSON
// array of objects with text/source/title/author/year fields, matching the
// batch index request shape.

type corpusDocument struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Info: No .env file found, using system env")
	}

	corpusPath := flag.String("corpus", "corpus.json", "path to the corpus JSON file")
	baseURL := flag.String("url", "http://localhost:3000", "base URL of the running server")
	batchSize := flag.Int("batch", 10, "documents per batch request")
	flag.Parse()

	color.Cyan("🚀 Seeding corpus from %s", *corpusPath)

	raw, err := os.ReadFile(*corpusPath)
	if err != nil {
		color.Red("Failed to read corpus: %v", err)
		os.Exit(1)
	}

	var docs []corpusDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		color.Red("Failed to parse corpus: %v", err)
		os.Exit(1)
	}
	color.Yellow("Loaded %d documents", len(docs))

	accepted := 0
	for start := 0; start < len(docs); start += *batchSize {
		end := start + *batchSize
		if end > len(docs) {
			end = len(docs)
		}

		payload, _ := json.Marshal(map[string]interface{}{"documents": docs[start:end]})
		resp, err := http.Post(*baseURL+"/api/document/v1/index/batch", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			color.Red("Batch %d-%d failed: %v", start, end, err)
			os.Exit(1)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			color.Red("Batch %d-%d rejected (%s): %s", start, end, resp.Status, string(body))
			os.Exit(1)
		}
		accepted += end - start
		color.Green("Batch %d-%d accepted", start, end)
	}

	color.Cyan("✅ Done: %d documents queued for indexing", accepted)
}
