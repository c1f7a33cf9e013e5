package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/mirrorfish/notion-anki-bridge/internal/llm"
	"github.com/mirrorfish/notion-anki-bridge/internal/metrics"
	"github.com/mirrorfish/notion-anki-bridge/internal/notion"
)

// setupFlashcardTestEnv 构建带全套mock依赖的闪卡服务
func setupFlashcardTestEnv(t *testing.T) (*FlashcardService, *notion.MockClient, *llm.MockClient, *anki.MockClient) {
	mockNotion := notion.NewMockClient(t)
	mockLLM := llm.NewMockClient(t)
	mockAnki := anki.NewMockClient(t)

	generator := llm.NewGenerator(mockLLM)
	service := NewFlashcardService(mockNotion, generator, mockAnki)

	return service, mockNotion, mockLLM, mockAnki
}

// notionPage 构造带标题属性的测试页面
func notionPage(id, title string) notion.Page {
	return notion.Page{
		Object: "page",
		ID:     id,
		URL:    "https://notion.so/" + id,
		Properties: map[string]notion.PageProperty{
			"title": {
				Type:  "title",
				Title: []notion.RichText{{Type: "text", Text: &notion.TextPayload{Content: title}}},
			},
		},
	}
}

// notionBlock 构造测试用内容块
func notionBlock(id string, kind notion.BlockKind, text string) notion.Block {
	b := notion.Block{ID: id, Kind: kind, Type: string(kind)}
	if text != "" {
		b.RichText = []notion.RichText{{Type: "text", Text: &notion.TextPayload{Content: text}}}
	}
	return b
}

// TestFlashcardServiceFindPage 测试页面定位
func TestFlashcardServiceFindPage(t *testing.T) {
	t.Run("page found", func(t *testing.T) {
		service, mockNotion, _, _ := setupFlashcardTestEnv(t)

		mockNotion.EXPECT().SearchPages(mock.Anything, "Go Basics").Return([]notion.Page{
			notionPage("page-1", "Go Basics"),
		}, nil)

		ref, err := service.FindPage(context.Background(), "Go Basics")

		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "page-1", ref.ID)
	})

	t.Run("page not found", func(t *testing.T) {
		service, mockNotion, _, _ := setupFlashcardTestEnv(t)

		mockNotion.EXPECT().SearchPages(mock.Anything, "Missing").Return([]notion.Page{}, nil)

		ref, err := service.FindPage(context.Background(), "Missing")

		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("search error", func(t *testing.T) {
		service, mockNotion, _, _ := setupFlashcardTestEnv(t)

		mockNotion.EXPECT().SearchPages(mock.Anything, "Broken").Return(nil, errors.New("network down"))

		_, err := service.FindPage(context.Background(), "Broken")

		assert.Error(t, err)
	})
}

// TestFlashcardServiceFindDatabase 测试数据库定位
func TestFlashcardServiceFindDatabase(t *testing.T) {
	service, mockNotion, _, _ := setupFlashcardTestEnv(t)

	mockNotion.EXPECT().SearchDatabases(mock.Anything, "Reading List").Return([]notion.Database{
		{
			Object: "database",
			ID:     "db-1",
			URL:    "https://notion.so/db-1",
			Title:  []notion.RichText{{Type: "text", Text: &notion.TextPayload{Content: "Reading List"}}},
		},
	}, nil)

	ref, err := service.FindDatabase(context.Background(), "Reading List")

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "db-1", ref.ID)
}

// TestFlashcardServiceExtractContent 测试页面内容提取
func TestFlashcardServiceExtractContent(t *testing.T) {
	t.Run("extracts topics and content", func(t *testing.T) {
		service, mockNotion, _, _ := setupFlashcardTestEnv(t)

		mockNotion.EXPECT().ListBlockChildren(mock.Anything, "page-1").Return([]notion.Block{
			notionBlock("h1", notion.KindHeading, "Topic1"),
			notionBlock("t1", notion.KindToggle, "What is X?"),
		}, nil)
		mockNotion.EXPECT().ListBlockChildren(mock.Anything, "t1").Return([]notion.Block{
			notionBlock("c1", notion.KindParagraph, "X is Y."),
		}, nil)

		topics, content, err := service.ExtractContent(context.Background(), "page-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"Topic1"}, topics)
		assert.Equal(t, map[string]string{"What is X?": "X is Y.\n"}, content)
	})

	t.Run("propagates fetch error", func(t *testing.T) {
		service, mockNotion, _, _ := setupFlashcardTestEnv(t)

		mockNotion.EXPECT().ListBlockChildren(mock.Anything, "page-1").Return(nil, errors.New("not found"))

		_, _, err := service.ExtractContent(context.Background(), "page-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch page blocks")
	})
}

// TestFlashcardServiceGenerateNotes 测试卡片生成和笔记包装
func TestFlashcardServiceGenerateNotes(t *testing.T) {
	t.Run("wraps cards into notes", func(t *testing.T) {
		service, _, mockLLM, _ := setupFlashcardTestEnv(t)

		mockLLM.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&llm.Response{Text: `[{"front":"Q1","back":"A1"},{"front":"","back":"dropped"}]`}, nil)

		notes, err := service.GenerateNotes(context.Background(), "Topic1", []string{"Topic1"}, map[string]string{"Q1": "A1\n"})

		require.NoError(t, err)
		require.Len(t, notes, 1, "empty-front card should be dropped")

		note := notes[0]
		assert.Equal(t, "Topic1", note.DeckName)
		assert.Equal(t, anki.ModelBasic, note.ModelName)
		assert.Equal(t, "Q1", note.Fields[anki.FieldFront])
		assert.Equal(t, "A1", note.Fields[anki.FieldBack])
		require.NotNil(t, note.Options)
		assert.False(t, note.Options.AllowDuplicate)
		assert.NotNil(t, note.Tags)
	})

	t.Run("unusable response yields empty sequence", func(t *testing.T) {
		service, _, mockLLM, _ := setupFlashcardTestEnv(t)

		mockLLM.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&llm.Response{Text: "I cannot produce JSON today."}, nil)

		notes, err := service.GenerateNotes(context.Background(), "Topic1", nil, map[string]string{"Q": "A"})

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("llm error propagates", func(t *testing.T) {
		service, _, mockLLM, _ := setupFlashcardTestEnv(t)

		mockLLM.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, llm.NewLLMError(llm.ErrCodeServerError, "model overloaded"))

		_, err := service.GenerateNotes(context.Background(), "Topic1", nil, map[string]string{"Q": "A"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate flashcards")
	})

	t.Run("empty content rejected", func(t *testing.T) {
		service, _, _, _ := setupFlashcardTestEnv(t)

		_, err := service.GenerateNotes(context.Background(), "Topic1", nil, map[string]string{})

		assert.Error(t, err)
	})
}

// TestFlashcardServicePublish 测试批量发布
func TestFlashcardServicePublish(t *testing.T) {
	notes := []anki.Note{anki.NewBasicNote("Topic1", "Q", "A")}

	t.Run("publish succeeds", func(t *testing.T) {
		service, _, _, mockAnki := setupFlashcardTestEnv(t)

		noteID := int64(12345)
		mockAnki.EXPECT().CreateDeck(mock.Anything, "Topic1").Return(int64(1), nil)
		mockAnki.EXPECT().AddNotes(mock.Anything, notes).Return([]*int64{&noteID}, nil)
		mockAnki.EXPECT().Sync(mock.Anything).Return(nil)

		result := service.Publish(context.Background(), "Topic1", notes)

		assert.Equal(t, PublishStatusAdded, result.Status)
		require.Len(t, result.Result, 1)
		require.NotNil(t, result.Result[0])
		assert.Equal(t, int64(12345), *result.Result[0])
		assert.Equal(t, "Added 1 flashcards to Anki deck 'Topic1'", result.Message)
	})

	t.Run("sync failure does not fail publish", func(t *testing.T) {
		mockNotion := notion.NewMockClient(t)
		mockLLM := llm.NewMockClient(t)
		mockAnki := anki.NewMockClient(t)
		m := metrics.NewMetrics(prometheus.NewRegistry())
		service := NewFlashcardService(mockNotion, llm.NewGenerator(mockLLM), mockAnki, WithFlashcardMetrics(m))

		noteID := int64(12345)
		mockAnki.EXPECT().CreateDeck(mock.Anything, "Topic1").Return(int64(1), nil)
		mockAnki.EXPECT().AddNotes(mock.Anything, notes).Return([]*int64{&noteID, nil}, nil)
		mockAnki.EXPECT().Sync(mock.Anything).Return(errors.New("auth required"))

		result := service.Publish(context.Background(), "Topic1", notes)

		assert.Equal(t, PublishStatusAdded, result.Status, "sync failure must not fail the publish")
		require.Len(t, result.Result, 2)
		assert.Equal(t, int64(12345), *result.Result[0])

		assert.Equal(t, float64(1), testutil.ToFloat64(m.SyncFailuresTotal))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.NotesPublishedTotal))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.NotesRejectedTotal))
	})

	t.Run("deck creation failure", func(t *testing.T) {
		service, _, _, mockAnki := setupFlashcardTestEnv(t)

		mockAnki.EXPECT().CreateDeck(mock.Anything, "Topic1").Return(int64(0), errors.New("cannot connect to Anki"))

		result := service.Publish(context.Background(), "Topic1", notes)

		assert.Equal(t, PublishStatusError, result.Status)
		assert.NotNil(t, result.Result)
		assert.Empty(t, result.Result)
		assert.Contains(t, result.Message, "Failed to add flashcards:")
		assert.Contains(t, result.Message, "cannot connect to Anki")
	})

	t.Run("note submission failure", func(t *testing.T) {
		service, _, _, mockAnki := setupFlashcardTestEnv(t)

		mockAnki.EXPECT().CreateDeck(mock.Anything, "Topic1").Return(int64(1), nil)
		mockAnki.EXPECT().AddNotes(mock.Anything, notes).Return(nil, errors.New("AnkiConnect error: invalid model"))

		result := service.Publish(context.Background(), "Topic1", notes)

		assert.Equal(t, PublishStatusError, result.Status)
		assert.Empty(t, result.Result)
		assert.Contains(t, result.Message, "Failed to add flashcards:")
	})
}

// TestFlashcardServiceAddCard 测试单卡添加
func TestFlashcardServiceAddCard(t *testing.T) {
	service, _, _, mockAnki := setupFlashcardTestEnv(t)

	mockAnki.EXPECT().AddCard(mock.Anything, "Deck", "F", "B").Return(int64(777), nil)

	noteID, err := service.AddCard(context.Background(), "Deck", "F", "B")

	require.NoError(t, err)
	assert.Equal(t, int64(777), noteID)
}

// TestFlashcardServiceCheckAnkiConnection 测试启动自检
func TestFlashcardServiceCheckAnkiConnection(t *testing.T) {
	t.Run("anki reachable", func(t *testing.T) {
		service, _, _, mockAnki := setupFlashcardTestEnv(t)

		mockAnki.EXPECT().Version(mock.Anything).Return(6, nil)

		version, err := service.CheckAnkiConnection(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 6, version)
	})

	t.Run("anki unreachable", func(t *testing.T) {
		service, _, _, mockAnki := setupFlashcardTestEnv(t)

		mockAnki.EXPECT().Version(mock.Anything).Return(0, errors.New("connection refused"))

		_, err := service.CheckAnkiConnection(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "anki connection check failed")
	})
}

// TestFlashcardServicePipeline 端到端流水线：定位、提取、生成、发布
func TestFlashcardServicePipeline(t *testing.T) {
	service, mockNotion, mockLLM, mockAnki := setupFlashcardTestEnv(t)
	ctx := context.Background()

	mockNotion.EXPECT().SearchPages(mock.Anything, "Topic1").Return([]notion.Page{
		notionPage("page-1", "Topic1"),
	}, nil)
	mockNotion.EXPECT().ListBlockChildren(mock.Anything, "page-1").Return([]notion.Block{
		notionBlock("h1", notion.KindHeading, "Topic1"),
		notionBlock("t1", notion.KindToggle, "What is X?"),
	}, nil)
	mockNotion.EXPECT().ListBlockChildren(mock.Anything, "t1").Return([]notion.Block{
		notionBlock("c1", notion.KindParagraph, "X is Y."),
	}, nil)

	// 大模型按问答内容原样返回一张卡片
	mockLLM.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&llm.Response{Text: `[{"front":"What is X?","back":"X is Y.\n"}]`}, nil)

	noteID := int64(12345)
	var submitted []anki.Note
	mockAnki.EXPECT().CreateDeck(mock.Anything, "Topic1").Return(int64(1), nil)
	mockAnki.EXPECT().AddNotes(mock.Anything, mock.Anything).Run(func(ctx context.Context, notes []anki.Note) {
		submitted = notes
	}).Return([]*int64{&noteID}, nil)
	mockAnki.EXPECT().Sync(mock.Anything).Return(nil)

	// 1. 定位页面
	ref, err := service.FindPage(ctx, "Topic1")
	require.NoError(t, err)
	require.NotNil(t, ref)

	// 2. 提取内容
	topics, content, err := service.ExtractContent(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic1"}, topics)
	assert.Equal(t, map[string]string{"What is X?": "X is Y.\n"}, content)

	// 3. 生成笔记
	notes, err := service.GenerateNotes(ctx, "Topic1", topics, content)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "What is X?", notes[0].Fields[anki.FieldFront])

	// 4. 发布
	result := service.Publish(ctx, "Topic1", notes)
	assert.Equal(t, PublishStatusAdded, result.Status)
	require.Len(t, result.Result, 1)
	assert.Equal(t, int64(12345), *result.Result[0])

	require.Len(t, submitted, 1)
	assert.Equal(t, "Topic1", submitted[0].DeckName)
}
