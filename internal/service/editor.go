package service

import "go.mongodb.org/mongo-driver/bson/primitive"

// The sub-collection editor. Embedded items live newest-first; every insert
// prepends, every removal locates the entry by its own identifier (never by
// a projected index) and keeps the order of the rest intact.

type subDocument interface {
	SubID() primitive.ObjectID
}

func insertFront[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func removeByID[T subDocument](list []T, id primitive.ObjectID) ([]T, bool) {
	for i, it := range list {
		if it.SubID() == id {
			return removeAt(list, i), true
		}
	}
	return list, false
}

func removeMatch[T any](list []T, match func(T) bool) ([]T, bool) {
	for i, it := range list {
		if match(it) {
			return removeAt(list, i), true
		}
	}
	return list, false
}

func containsMatch[T any](list []T, match func(T) bool) bool {
	for _, it := range list {
		if match(it) {
			return true
		}
	}
	return false
}

func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
