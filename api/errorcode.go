package api

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",

		1100: "unknown data column",
		1101: "unknown country",
		1102: "unknown palette",
	}

	errorInternalServer    = errorJSON(999)
	errorInvalidParameters = errorJSON(1010)
	errorUnknownColumn     = errorJSON(1100)
	errorUnknownCountry    = errorJSON(1101)
	errorUnknownPalette    = errorJSON(1102)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func errorJSON(code int64) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: errorMessageMap[code],
	}
}
