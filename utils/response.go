package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Status  string      `json:"status"`
	Token   string      `json:"token,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func WriteData(w http.ResponseWriter, code int, data interface{}) {
	WriteJSON(w, code, APIResponse{Data: data, Status: "success"})
}

func WriteMessage(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteJSON(w, code, APIResponse{Data: data, Message: message, Status: "success"})
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, APIResponse{Message: message, Status: "error"})
}
