package lines

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ccloc/internal/model"
)

// analyzeText 是测试辅助函数，用于快速运行状态机并返回统计结果。
func analyzeText(t *testing.T, content string) model.LineMetrics {
	t.Helper()

	metrics, err := Analyze(strings.NewReader(content))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	return metrics
}

// TestLineCommentPrefix 验证只有行首（忽略缩进）的 // 才算注释行。
func TestLineCommentPrefix(t *testing.T) {
	content := "int a = 1;\n" +
		"    // indented comment\n" +
		"int b = 2; // trailing comment\n"

	metrics := analyzeText(t, content)

	if metrics.Total != 3 || metrics.Code != 2 || metrics.Comment != 1 || metrics.Blank != 0 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestBlockCommentSpan 验证块注释从开始行到结束行整行都是注释，即使行内还有代码。
func TestBlockCommentSpan(t *testing.T) {
	content := "int a; /* starts here\n" +
		"inside\n" +
		"ends here */ int b;\n" +
		"int c;\n"

	metrics := analyzeText(t, content)

	if metrics.Total != 4 || metrics.Code != 1 || metrics.Comment != 3 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestSelfClosingBlockComment 验证同一行开合的块注释不会影响下一行。
func TestSelfClosingBlockComment(t *testing.T) {
	content := "int a; /* note */\n" +
		"int b;\n"

	metrics := analyzeText(t, content)

	if metrics.Code != 1 || metrics.Comment != 1 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestOpenerOnlyMarker 验证 /*/ 不会被当成自闭合注释。
func TestOpenerOnlyMarker(t *testing.T) {
	content := "/*/\n" +
		"still comment\n" +
		"*/\n" +
		"code();\n"

	metrics := analyzeText(t, content)

	if metrics.Code != 1 || metrics.Comment != 3 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestSecondOpenerAfterSelfClosedComment 验证一行内自闭合注释之后的第二个 /* 不会进入块注释状态。
func TestSecondOpenerAfterSelfClosedComment(t *testing.T) {
	content := "/* a */ /* b\n" +
		"int x;\n"

	metrics := analyzeText(t, content)

	if metrics.Code != 1 || metrics.Comment != 1 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestCommentMarkerInsideString 验证字符串中的 /* 仍会被当成注释起点。
func TestCommentMarkerInsideString(t *testing.T) {
	content := "const char *p = \"/* not really\";\n" +
		"int a;\n" +
		"*/\n" +
		"int b;\n"

	metrics := analyzeText(t, content)

	if metrics.Code != 1 || metrics.Comment != 3 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestBlankToggle 验证空白行开关。
func TestBlankToggle(t *testing.T) {
	content := "   \n\t\n\n"

	excluded, err := Count(strings.NewReader(content), true)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if excluded != 0 {
		t.Fatalf("expected 0 with blanks excluded, got %d", excluded)
	}

	included, err := Count(strings.NewReader(content), false)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if included != 3 {
		t.Fatalf("expected 3 with blanks included, got %d", included)
	}
}

// TestCRLFAndMissingTrailingNewline 验证 \r\n 换行和最后一行没有换行符的情况。
func TestCRLFAndMissingTrailingNewline(t *testing.T) {
	content := "int a;\r\n\r\n/* c */\r\nint b;"

	metrics := analyzeText(t, content)

	if metrics.Total != 4 || metrics.Code != 2 || metrics.Comment != 1 || metrics.Blank != 1 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestEmptyInput 验证空输入不会产生任何行。
func TestEmptyInput(t *testing.T) {
	metrics := analyzeText(t, "")

	if metrics.Total != 0 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

// TestCountFileMissing 验证文件不存在时返回错误。
func TestCountFileMissing(t *testing.T) {
	_, err := CountFile(filepath.Join(t.TempDir(), "missing.h"), true)
	if err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

// TestCountFile 验证文件入口和内存入口结果一致。
func TestCountFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.h")
	content := "/* header\n * text\n */\nint f();\nint g();\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	loc, err := CountFile(path, true)
	if err != nil {
		t.Fatalf("count file failed: %v", err)
	}
	if loc != 2 {
		t.Fatalf("expected 2, got %d", loc)
	}
}
