package board

import "iter"

const ballBlockSize = 64

// ballStorage keeps balls in fixed-size blocks. Slots of removed balls stay
// empty until compact is called, so slot indices are stable between compactions.
type ballStorage struct {
	blocks    [][ballBlockSize]Ball
	filled    [][ballBlockSize]bool
	nextIndex int
	empty     int
}

// append stores a ball at the end of the storage and returns its slot.
func (s *ballStorage) append(b Ball) int {
	index := s.nextIndex
	s.nextIndex++

	blockIdx := index / ballBlockSize
	slotIdx := index % ballBlockSize

	if blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, [ballBlockSize]Ball{})
		s.filled = append(s.filled, [ballBlockSize]bool{})
	}

	s.blocks[blockIdx][slotIdx] = b
	s.filled[blockIdx][slotIdx] = true
	return index
}

// get returns a pointer to the ball at the given slot, or nil if the slot is empty.
func (s *ballStorage) get(index int) *Ball {
	if index < 0 || index >= s.nextIndex {
		return nil
	}

	blockIdx := index / ballBlockSize
	slotIdx := index % ballBlockSize

	if !s.filled[blockIdx][slotIdx] {
		return nil
	}
	return &s.blocks[blockIdx][slotIdx]
}

// delete empties a slot. Returns false if it was already empty.
func (s *ballStorage) delete(index int) bool {
	if index < 0 || index >= s.nextIndex {
		return false
	}

	blockIdx := index / ballBlockSize
	slotIdx := index % ballBlockSize

	if !s.filled[blockIdx][slotIdx] {
		return false
	}

	s.filled[blockIdx][slotIdx] = false
	s.blocks[blockIdx][slotIdx] = Ball{}
	s.empty++
	return true
}

// len returns the number of filled slots.
func (s *ballStorage) len() int {
	return s.nextIndex - s.empty
}

// compact moves all balls to the front of the storage, preserving order.
// Returns the ids of the moved balls mapped to their new slot.
func (s *ballStorage) compact() map[BallId]int {
	moved := make(map[BallId]int)
	total := s.len()

	if total == 0 {
		s.blocks = nil
		s.filled = nil
		s.nextIndex = 0
		s.empty = 0
		return moved
	}

	numBlocks := (total + ballBlockSize - 1) / ballBlockSize
	newBlocks := make([][ballBlockSize]Ball, numBlocks)
	newFilled := make([][ballBlockSize]bool, numBlocks)

	writePos := 0
	for readIdx := 0; readIdx < s.nextIndex; readIdx++ {
		readBlock := readIdx / ballBlockSize
		readSlot := readIdx % ballBlockSize
		if !s.filled[readBlock][readSlot] {
			continue
		}

		b := s.blocks[readBlock][readSlot]
		if writePos != readIdx {
			moved[b.Id] = writePos
		}
		newBlocks[writePos/ballBlockSize][writePos%ballBlockSize] = b
		newFilled[writePos/ballBlockSize][writePos%ballBlockSize] = true
		writePos++
	}

	s.blocks = newBlocks
	s.filled = newFilled
	s.nextIndex = writePos
	s.empty = 0
	return moved
}

// iter yields pointers to all stored balls in slot order.
func (s *ballStorage) iter() iter.Seq[*Ball] {
	return func(yield func(*Ball) bool) {
		for i := 0; i < s.nextIndex; i++ {
			blockIdx := i / ballBlockSize
			slotIdx := i % ballBlockSize

			if s.filled[blockIdx][slotIdx] {
				if !yield(&s.blocks[blockIdx][slotIdx]) {
					return
				}
			}
		}
	}
}

// backward yields pointers to all stored balls, last slot first.
func (s *ballStorage) backward() iter.Seq[*Ball] {
	return func(yield func(*Ball) bool) {
		for i := s.nextIndex - 1; i >= 0; i-- {
			blockIdx := i / ballBlockSize
			slotIdx := i % ballBlockSize

			if s.filled[blockIdx][slotIdx] {
				if !yield(&s.blocks[blockIdx][slotIdx]) {
					return
				}
			}
		}
	}
}
