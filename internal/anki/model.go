package anki

import (
	"fmt"
	"strings"
)

const (
	// ModelBasic 两字段基础卡片模型名
	ModelBasic = "Basic"
	// FieldFront 卡片正面字段名
	FieldFront = "Front"
	// FieldBack 卡片背面字段名
	FieldBack = "Back"
)

// NoteOptions 笔记提交选项
type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"` // 是否允许重复卡片
}

// Note AnkiConnect笔记
// 字段名与AnkiConnect的JSON协议一一对应
type Note struct {
	DeckName  string            `json:"deckName"`          // 目标牌组名
	ModelName string            `json:"modelName"`         // 卡片模型名
	Fields    map[string]string `json:"fields"`            // 字段映射(Front/Back)
	Options   *NoteOptions      `json:"options,omitempty"` // 提交选项
	Tags      []string          `json:"tags"`              // 标签集合，始终非nil
}

// NewBasicNote 构造Basic模型的笔记
// 牌组名去除首尾空白；正反面原样保留（答案文本可能以换行结尾）
func NewBasicNote(deck, front, back string) Note {
	return Note{
		DeckName:  strings.TrimSpace(deck),
		ModelName: ModelBasic,
		Fields: map[string]string{
			FieldFront: front,
			FieldBack:  back,
		},
		Options: &NoteOptions{AllowDuplicate: false},
		Tags:    []string{},
	}
}

// Validate 检查笔记是否具备提交所需的结构
// 只做结构检查：牌组名、模型名、字段映射及其中的正反面键；
// 内容是否为空由上游的卡片过滤保证
func (n Note) Validate() error {
	if n.DeckName == "" {
		return fmt.Errorf("note missing deck name")
	}
	if n.ModelName == "" {
		return fmt.Errorf("note missing model name")
	}
	if n.Fields == nil {
		return fmt.Errorf("note missing fields mapping")
	}
	if _, ok := n.Fields[FieldFront]; !ok {
		return fmt.Errorf("note fields missing %s", FieldFront)
	}
	if _, ok := n.Fields[FieldBack]; !ok {
		return fmt.Errorf("note fields missing %s", FieldBack)
	}
	return nil
}

// connectRequest AnkiConnect请求体
type connectRequest struct {
	Action  string      `json:"action"`  // 动作名
	Version int         `json:"version"` // 协议版本，固定为6
	Params  interface{} `json:"params"`  // 动作参数
}

// createDeckParams createDeck动作参数
type createDeckParams struct {
	Deck string `json:"deck"`
}

// addNotesParams addNotes动作参数
type addNotesParams struct {
	Notes []Note `json:"notes"`
}

// addCardParams guiAddCards动作参数
type addCardParams struct {
	Note Note `json:"note"`
}
