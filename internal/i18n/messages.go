package i18n

// Key identifies a UI message.
type Key string

const (
	AppName          Key = "app_name"
	PickTopic        Key = "pick_topic"
	NoTopics         Key = "no_topics"
	StartPractice    Key = "start_practice"
	ParentDashboard  Key = "parent_dashboard"
	ManageBank       Key = "manage_bank"
	LangSwitch       Key = "lang_switch"
	NoQuestions      Key = "no_questions"
	Question         Key = "question"
	Of               Key = "of"
	CheckAnswer      Key = "check_answer"
	NextQuestion     Key = "next_question"
	SeeResults       Key = "see_results"
	TypeAnswer       Key = "type_answer"
	BlankAnswer      Key = "blank_answer"
	Correct          Key = "correct"
	Incorrect        Key = "incorrect"
	CorrectAnswerIs  Key = "correct_answer_is"
	Explanation      Key = "explanation"
	Finished         Key = "finished"
	YourScore        Key = "your_score"
	GoBackHome       Key = "go_back_home"
	Quit             Key = "quit"
	DashboardTitle   Key = "dashboard_title"
	OverallAccuracy  Key = "overall_accuracy"
	TotalDone        Key = "total_done"
	TodayDone        Key = "today_done"
	AccuracyByTopic  Key = "accuracy_by_topic"
	NeedMorePractice Key = "need_more_practice"
	GreatJob         Key = "great_job"
	NoRecords        Key = "no_records"
	ClearRecords     Key = "clear_records"
	ConfirmReset     Key = "confirm_reset"
	ConfirmClearBank Key = "confirm_clear_bank"
	ConfirmDelete    Key = "confirm_delete"
	BankEmpty        Key = "bank_empty"
	SyncNow          Key = "sync_now"
	Syncing          Key = "syncing"
	SyncSuccess      Key = "sync_success"
	SyncError        Key = "sync_error"
	SyncMissing      Key = "sync_missing"
	SyncDenied       Key = "sync_denied"
	SyncNotFound     Key = "sync_not_found"
	SyncNoData       Key = "sync_no_data"
	SyncNoValid      Key = "sync_no_valid"
	SyncReplaceWarn  Key = "sync_replace_warn"
	AIGenerated      Key = "ai_generated"
	AIError          Key = "ai_error"
	AINotConfigured  Key = "ai_not_configured"
	OCRFound         Key = "ocr_found"
	OCRError         Key = "ocr_error"
	EnterPIN         Key = "enter_pin"
	WrongPIN         Key = "wrong_pin"
	Loading          Key = "loading"
	YesNo            Key = "yes_no"
	Back             Key = "back"
	CategoryLabel    Key = "category_label"
	AnswerLabel      Key = "answer_label"
	PageOf           Key = "page_of"
	Deleted          Key = "deleted"
	Cleared          Key = "cleared"
	Tagline          Key = "tagline"
	PressAnyKey      Key = "press_any_key"
	RecentRuns       Key = "recent_runs"
)

var catalogue = map[Lang]map[Key]string{
	EN: {
		AppName:          "Wordwise",
		PickTopic:        "Pick a topic",
		NoTopics:         "No topics available. Ask a parent to add questions.",
		StartPractice:    "Start practice",
		ParentDashboard:  "Parent dashboard",
		ManageBank:       "Question bank",
		LangSwitch:       "中文",
		NoQuestions:      "No questions in this category!",
		Question:         "Question",
		Of:               "of",
		CheckAnswer:      "Check answer",
		NextQuestion:     "Next question",
		SeeResults:       "See results",
		TypeAnswer:       "Type your answer",
		BlankAnswer:      "Please choose or type an answer first.",
		Correct:          "Correct!",
		Incorrect:        "Not quite.",
		CorrectAnswerIs:  "The answer is: %s",
		Explanation:      "Why",
		Finished:         "Finished!",
		YourScore:        "Your score",
		GoBackHome:       "Back to home",
		Quit:             "Quit",
		DashboardTitle:   "Learning report",
		OverallAccuracy:  "Overall accuracy",
		TotalDone:        "Questions answered",
		TodayDone:        "Answered today",
		AccuracyByTopic:  "Accuracy by topic",
		NeedMorePractice: "Needs more practice",
		GreatJob:         "Great job! No weak spots.",
		NoRecords:        "No practice records yet.",
		ClearRecords:     "Clear records",
		ConfirmReset:     "Clear all practice records?",
		ConfirmClearBank: "Clear all questions?",
		ConfirmDelete:    "Delete this question?",
		BankEmpty:        "The question bank is empty.",
		SyncNow:          "Sync from Google Sheets",
		Syncing:          "Syncing…",
		SyncSuccess:      "Sync complete (%d questions)",
		SyncError:        "Sync failed",
		SyncMissing:      "Please input API Key and Sheet ID",
		SyncDenied:       "Permission Denied. Ensure the sheet is shared as 'Anyone with the link can view'.",
		SyncNotFound:     "Sheet or Range not found. Check Spreadsheet ID and Range name.",
		SyncNoData:       "No data found in this range.",
		SyncNoValid:      "No valid questions found in data rows.",
		SyncReplaceWarn:  "Syncing replaces the whole question bank.",
		AIGenerated:      "Added %d AI questions.",
		AIError:          "AI generation failed",
		AINotConfigured:  "AI features need an API key.",
		OCRFound:         "Found %d questions.",
		OCRError:         "Could not read the worksheet",
		EnterPIN:         "Parent PIN",
		WrongPIN:         "Wrong PIN",
		Loading:          "Loading…",
		YesNo:            "(y/n)",
		Back:             "Back",
		CategoryLabel:    "Category",
		AnswerLabel:      "Answer",
		PageOf:           "Page %d of %d",
		Deleted:          "Deleted.",
		Cleared:          "Cleared.",
		Tagline:          "Let's learn English!",
		PressAnyKey:      "press any key to continue",
		RecentRuns:       "Recent practice",
	},
	ZH: {
		AppName:          "Wordwise 英語小達人",
		PickTopic:        "選擇主題",
		NoTopics:         "目前沒有題目，請家長新增題目。",
		StartPractice:    "開始練習",
		ParentDashboard:  "家長報告",
		ManageBank:       "題庫管理",
		LangSwitch:       "English",
		NoQuestions:      "此分類沒有題目！",
		Question:         "第",
		Of:               "題，共",
		CheckAnswer:      "檢查答案",
		NextQuestion:     "下一題",
		SeeResults:       "查看結果",
		TypeAnswer:       "輸入你的答案",
		BlankAnswer:      "請先選擇或輸入答案。",
		Correct:          "答對了！",
		Incorrect:        "再想想看。",
		CorrectAnswerIs:  "正確答案：%s",
		Explanation:      "解析",
		Finished:         "完成了！",
		YourScore:        "你的分數",
		GoBackHome:       "回到首頁",
		Quit:             "離開",
		DashboardTitle:   "學習報告",
		OverallAccuracy:  "整體正確率",
		TotalDone:        "已作答題數",
		TodayDone:        "今日作答",
		AccuracyByTopic:  "各主題正確率",
		NeedMorePractice: "需要多加練習",
		GreatJob:         "太棒了！沒有弱點。",
		NoRecords:        "還沒有練習紀錄。",
		ClearRecords:     "清除紀錄",
		ConfirmReset:     "確定要清除所有練習紀錄嗎？",
		ConfirmClearBank: "確定要清空所有題目嗎？",
		ConfirmDelete:    "確定要刪除這題嗎？",
		BankEmpty:        "題庫是空的。",
		SyncNow:          "從 Google 試算表同步",
		Syncing:          "同步中…",
		SyncSuccess:      "同步完成（%d 題）",
		SyncError:        "同步失敗",
		SyncMissing:      "請輸入 API Key 與 Spreadsheet ID",
		SyncDenied:       "存取被拒。請確保試算表已設為『知道連結的任何人都可以檢視』，且 API Key 正確。",
		SyncNotFound:     "找不到試算表或分頁範圍。請檢查 Spreadsheet ID 與範圍名稱（如 Sheet1）。",
		SyncNoData:       "此範圍內沒有任何資料。",
		SyncNoValid:      "找到資料但沒有有效的題目內容（請檢查 C 欄與 E 欄）。",
		SyncReplaceWarn:  "同步會取代整個題庫。",
		AIGenerated:      "已新增 %d 題 AI 題目。",
		AIError:          "AI 出題失敗",
		AINotConfigured:  "AI 功能需要設定 API Key。",
		OCRFound:         "找到 %d 題。",
		OCRError:         "無法讀取練習卷",
		EnterPIN:         "家長密碼",
		WrongPIN:         "密碼錯誤",
		Loading:          "載入中…",
		YesNo:            "(y/n)",
		Back:             "返回",
		CategoryLabel:    "分類",
		AnswerLabel:      "答案",
		PageOf:           "第 %d / %d 頁",
		Deleted:          "已刪除。",
		Cleared:          "已清空。",
		Tagline:          "一起快樂學英文！",
		PressAnyKey:      "按任意鍵繼續",
		RecentRuns:       "最近練習",
	},
}
