package services

const (
	LogActionDataRetrieval  = "DATA_RETRIVAL"
	LogActionArchiveExtract = "ARCHIVE_EXTRACT"
	LogActionWorkbookParse  = "WORKBOOK_PARSE"
	LogActionDataLoad       = "DATA_LOAD"
	LogOutcomeSuccess       = "SUCCESS"
	LogOutcomeFail          = "FAIL"
)
