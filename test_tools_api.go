package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// 对运行中的服务串联执行一轮完整的工具调用
// 用法: go run test_tools_api.go [页面名称]
func main() {
	baseURL := "http://localhost:8080"
	pageName := "Backtracking II"
	if len(os.Args) > 1 {
		pageName = os.Args[1]
	}

	// 1. 健康检查
	fmt.Println("\n=== Testing Health ===")
	resp, err := http.Get(baseURL + "/api/health")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\nResponse: %s\n", resp.StatusCode, string(body))

	// 2. 按标题查找页面
	fmt.Println("\n=== Testing search_page ===")
	searchResult, err := postTool(baseURL+"/api/tools/search_page", map[string]interface{}{
		"page_name": pageName,
	})
	if err != nil {
		fmt.Printf("Error searching page: %v\n", err)
		return
	}
	pageID := extractPageID(searchResult)
	if pageID == "" {
		fmt.Printf("Page '%s' not found, stopping\n", pageName)
		return
	}
	fmt.Printf("Page ID: %s\n", pageID)

	// 3. 提取主题和问答内容
	fmt.Println("\n=== Testing extract_page_content ===")
	extractResult, err := postTool(baseURL+"/api/tools/extract_page_content", map[string]interface{}{
		"page_id": pageID,
	})
	if err != nil {
		fmt.Printf("Error extracting content: %v\n", err)
		return
	}
	topics, _ := extractResult["topics"].([]interface{})
	content, _ := extractResult["content"].(map[string]interface{})
	fmt.Printf("Topics: %d, QA pairs: %d\n", len(topics), len(content))
	if len(content) == 0 {
		fmt.Println("No extractable content, stopping")
		return
	}

	// 4. 生成闪卡并发布到Anki
	fmt.Println("\n=== Testing generate_flashcards ===")
	if _, err := postTool(baseURL+"/api/tools/generate_flashcards", map[string]interface{}{
		"page_name": pageName,
		"topics":    topics,
		"content":   content,
	}); err != nil {
		fmt.Printf("Error generating flashcards: %v\n", err)
		return
	}

	// 5. 通过图形界面对话框添加单张卡片
	fmt.Println("\n=== Testing add_flashcard ===")
	if _, err := postTool(baseURL+"/api/tools/add_flashcard", map[string]interface{}{
		"deck_name": pageName,
		"front":     "Manual test question",
		"back":      "Manual test answer",
	}); err != nil {
		fmt.Printf("Error adding flashcard: %v\n", err)
	}
}

// postTool 发送工具调用请求并解析响应体
func postTool(url string, payload map[string]interface{}) (map[string]interface{}, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	fmt.Printf("Status: %d\nResponse: %s\n", resp.StatusCode, string(respBody))

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("error parsing JSON response: %v", err)
	}

	return result, nil
}

// extractPageID 从查找结果中取出页面ID
func extractPageID(result map[string]interface{}) string {
	if result["status"] != "success" {
		return ""
	}
	if inner, ok := result["result"].(map[string]interface{}); ok {
		if pageID, ok := inner["page_id"].(string); ok {
			return pageID
		}
	}
	return ""
}
