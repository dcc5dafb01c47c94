package yelp

import (
	"encoding/json"

	"FoodScout/entity"
)

type SearchResponse struct {
	Businesses []entity.Business `json:"businesses"`
	Total      int               `json:"total"`
}

func ParseSearchResponse(body []byte) (*SearchResponse, error) {
	var response SearchResponse
	err := json.Unmarshal(body, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
