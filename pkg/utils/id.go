package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateOrderNumber returns a human friendly order reference.
func GenerateOrderNumber() (string, error) {
	id, err := gonanoid.Generate("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", 10)
	if err != nil {
		return "", err
	}
	return "ORD-" + id, nil
}
