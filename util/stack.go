package util

import "github.com/samber/mo"

// Stack is a LIFO of values, the zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top value, None when the stack is empty.
func (s *Stack[T]) Pop() mo.Option[T] {
	top := s.Peek()
	if top.IsPresent() {
		s.items = s.items[:len(s.items)-1]
	}
	return top
}

func (s *Stack[T]) Peek() mo.Option[T] {
	if len(s.items) == 0 {
		return mo.None[T]()
	}
	return mo.Some(s.items[len(s.items)-1])
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
