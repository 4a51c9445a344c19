// Package dto defines the JSON payloads of the prices HTTP API.
package dto

import "encoding/json"

// MonthAverageResponse は月平均のレスポンスDTOです。データのない月は average が null になります。
type MonthAverageResponse struct {
	Month   string       `json:"month"`   // yyyy-mm
	Average *json.Number `json:"average"` // 終値平均（小数点以下2桁）
}

// IncreaseResponse は最長上昇区間のレスポンスDTOです。
type IncreaseResponse struct {
	From     string      `json:"from"`     // 区間開始日
	To       string      `json:"to"`       // 区間終了日
	Length   int         `json:"length"`   // 日数
	Increase json.Number `json:"increase"` // 上昇幅
}

// PricePointResponse は日付と終値のペアです。
type PricePointResponse struct {
	Date  string      `json:"date"`
	Price json.Number `json:"price"`
}

// ErrorResponse はエラーレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
