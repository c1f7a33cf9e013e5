package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Walker 内容块遍历器
// 从页面顶层块序列中提取主题集合和问答映射：
// 标题块进入主题集合，折叠块的标题作为问题、子块重建出的文本作为答案
type Walker struct {
	client Client
	logger *logrus.Logger
}

// NewWalker 创建内容块遍历器
func NewWalker(client Client, logger *logrus.Logger) *Walker {
	if logger == nil {
		logger = logrus.New()
	}
	return &Walker{
		client: client,
		logger: logger,
	}
}

// AnalyzePage 拉取页面顶层块并提取内容
func (w *Walker) AnalyzePage(ctx context.Context, pageID string) ([]string, map[string]string, error) {
	blocks, err := w.client.ListBlockChildren(ctx, pageID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch page blocks: %w", err)
	}
	return w.Analyze(ctx, blocks)
}

// Analyze 遍历顶层块序列，返回主题列表和问答映射
// 主题按首次出现顺序去重；问题去除首尾空白后作为键，
// 答案保留重建出的原文（含换行）；重复问题以后出现的为准并记录警告
func (w *Walker) Analyze(ctx context.Context, blocks []Block) ([]string, map[string]string, error) {
	topics := make([]string, 0)
	seen := make(map[string]struct{})
	content := make(map[string]string)

	for _, block := range blocks {
		switch block.Kind {
		case KindHeading:
			text, ok := block.FirstText()
			if !ok {
				continue
			}
			heading := strings.TrimSpace(text)
			if heading == "" {
				continue
			}
			if _, dup := seen[heading]; dup {
				continue
			}
			seen[heading] = struct{}{}
			topics = append(topics, heading)

		case KindToggle:
			text, ok := block.FirstText()
			if !ok {
				continue
			}
			question := strings.TrimSpace(text)
			if question == "" {
				continue
			}

			answer, err := w.toggleAnswer(ctx, block.ID)
			if err != nil {
				return nil, nil, err
			}
			if strings.TrimSpace(answer) == "" {
				continue
			}

			if _, dup := content[question]; dup {
				w.logger.WithField("question", question).Warn("Duplicate question overwrites earlier answer")
			}
			content[question] = answer
		}
	}

	return topics, content, nil
}

// toggleAnswer 拉取折叠块的子块并重建答案文本
// 段落和列表项各占一行；有序列表编号只在连续运行内递增，
// 任何非有序列表的兄弟块（包括被忽略的类型）都会使编号重置为1
func (w *Walker) toggleAnswer(ctx context.Context, blockID string) (string, error) {
	children, err := w.client.ListBlockChildren(ctx, blockID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch toggle children: %w", err)
	}

	var answer strings.Builder
	number := 1
	var previous BlockKind

	for _, child := range children {
		switch child.Kind {
		case KindParagraph:
			answer.WriteString(child.PlainText() + "\n")
		case KindBulleted:
			answer.WriteString("- " + child.PlainText() + "\n")
		case KindNumbered:
			if previous == KindNumbered {
				number++
			} else {
				number = 1
			}
			fmt.Fprintf(&answer, "%d. %s\n", number, child.PlainText())
		}
		previous = child.Kind
	}

	return answer.String(), nil
}
