//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // LLM calls can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Retrieval & Chat API Test\n")

	// 1. Index a document
	color.Yellow("\n1. Index Document")
	indexReq := map[string]interface{}{
		"text":   "The mitochondria is the powerhouse of the cell.",
		"title":  "Cell Biology Basics",
		"author": "Smith, J.",
		"year":   "2023",
	}
	resp, body, err := sendRequest("POST", "/document/v1/index", indexReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var indexResp map[string]interface{}
	json.Unmarshal(body, &indexResp)
	prettyPrint(indexResp)

	// 2. Retrieve
	color.Yellow("\n2. Retrieve")
	resp, body, err = sendRequest("POST", "/document/v1/retrieve", map[string]interface{}{
		"text":  "What generates energy in cells?",
		"top_k": 3,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var retrieveResp map[string]interface{}
	json.Unmarshal(body, &retrieveResp)
	prettyPrint(retrieveResp)

	// 3. Chat turn
	color.Yellow("\n3. Send Chat")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]interface{}{
		"thread_id": "smoke-test-thread",
		"message":   "What is the role of mitochondria?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 4. History
	color.Yellow("\n4. Get History")
	resp, body, err = sendRequest("GET", "/chat/v1/smoke-test-thread/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	// 5. Suggestions
	color.Yellow("\n5. Suggest Follow-ups")
	resp, body, err = sendRequest("POST", "/chat/v1/suggest", map[string]interface{}{
		"thread_id": "smoke-test-thread",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var suggestResp map[string]interface{}
	json.Unmarshal(body, &suggestResp)
	prettyPrint(suggestResp)

	color.Cyan("\n✅ All endpoints responded")
}
