package shingidoc

// DocumentType classifies a document's visual and structural layout, which
// determines how it should be read downstream.
type DocumentType string

// Document layout types.
const (
	TypeWordLike         DocumentType = "word_like"
	TypePowerPointLike   DocumentType = "powerpoint_like"
	TypeMixed            DocumentType = "mixed"
	TypeAgenda           DocumentType = "agenda"
	TypeParticipantsList DocumentType = "participants_list"
	TypePressRelease     DocumentType = "press_release"
	TypeSurveyReport     DocumentType = "survey_report"
)

// SummaryStrategy names the downstream reading strategy for a document type.
type SummaryStrategy string

// Reading strategies, one per document layout type.
const (
	StrategyLongform        SummaryStrategy = "longform_summary"
	StrategySlideBullet     SummaryStrategy = "slide_bullet_summary"
	StrategyAgendaStructure SummaryStrategy = "agenda_structure_summary"
	StrategyNameList        SummaryStrategy = "name_list_extract"
	StrategyNewsStyle       SummaryStrategy = "news_style_summary"
	StrategyDataPoints      SummaryStrategy = "data_points_summary"
	StrategyHybrid          SummaryStrategy = "hybrid_summary"
)

// Features is the structural and lexical feature vector computed from a
// document's first pages of extracted text.
type Features struct {
	LineCount           int     `json:"line_count"`
	SentenceLikeCount   int     `json:"sentence_like_count"`
	SentenceDensity     float64 `json:"sentence_density"`
	BulletCount         int     `json:"bullet_count"`
	SymbolBulletCount   int     `json:"symbol_bullet_count"`
	NominalEndingCount  int     `json:"nominal_ending_count"`
	TopicLineCount      int     `json:"topic_line_count"`
	ParagraphCount      int     `json:"paragraph_count"`
	ParticleCount       int     `json:"particle_count"`
	PoliteStyleCount    int     `json:"polite_style_count"`
	DearuStyleCount     int     `json:"dearu_style_count"`
	CitationCount       int     `json:"citation_count"`
	ReferenceExprCount  int     `json:"reference_expr_count"`
	PageNumberLineCount int     `json:"page_number_line_count"`
	ShortLineRatio      float64 `json:"short_line_ratio"`
}

// AnalysisResult is the per-document output of the analysis pipeline.
// Terminal once produced; never mutated afterward.
type AnalysisResult struct {
	URL       string `json:"url"`
	Text      string `json:"text"`
	SavedPath string `json:"saved_path"`
	Analyzed  bool   `json:"analyzed"`

	PageCount      *int            `json:"page_count,omitempty"`
	FirstPagesPath string          `json:"first_pages_text_path,omitempty"`
	Features       *Features       `json:"features,omitempty"`
	DocumentType   DocumentType    `json:"document_type,omitempty"`
	Reason         string          `json:"classification_reason,omitempty"`
	Strategy       SummaryStrategy `json:"summary_strategy,omitempty"`

	Error string `json:"error,omitempty"`
}

// PageProber reports the number of pages in a stored document. The second
// return value is false when the count is unknown (missing file, unreadable
// document); probing never fails the run.
type PageProber interface {
	PageCount(path string) (int, bool)
}

// TextExtractor extracts plain text from an inclusive page range of a
// stored document. Page numbers are 1-based; lastPage is clamped to the
// document length.
type TextExtractor interface {
	ExtractText(path string, firstPage, lastPage int) (string, error)
}
