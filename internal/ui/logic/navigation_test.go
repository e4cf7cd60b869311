package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigator_MovesWithinBounds(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(5, 3)

	n.Navigate("up")
	assert.Equal(t, 0, n.GetSelectedIndex())

	n.Navigate("down")
	n.Navigate("down")
	n.Navigate("down")
	assert.Equal(t, 3, n.GetSelectedIndex())
	assert.Equal(t, 1, n.GetViewportOffset())

	n.Navigate("end")
	assert.Equal(t, 4, n.GetSelectedIndex())
	assert.Equal(t, 2, n.GetViewportOffset())

	n.Navigate("down")
	assert.Equal(t, 4, n.GetSelectedIndex())

	n.Navigate("home")
	assert.Equal(t, 0, n.GetSelectedIndex())
	assert.Equal(t, 0, n.GetViewportOffset())
}

func TestNavigator_PageMoves(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(20, 5)

	n.Navigate("pagedown")
	assert.Equal(t, 5, n.GetSelectedIndex())
	n.Navigate("pageup")
	assert.Equal(t, 0, n.GetSelectedIndex())
}

func TestNavigator_ShrinkingListClampsCursor(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(10, 4)
	n.Navigate("end")

	n.UpdateState(3, 4)
	assert.Equal(t, 2, n.GetSelectedIndex())
	assert.Equal(t, 0, n.GetViewportOffset())

	start, end := n.VisibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestNavigator_EmptyList(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(0, 4)
	n.Navigate("down")

	assert.Equal(t, 0, n.GetSelectedIndex())
	start, end := n.VisibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestNavigator_Reset(t *testing.T) {
	n := NewNavigator()
	n.UpdateState(10, 3)
	n.Navigate("end")

	n.Reset(6)
	assert.Equal(t, 0, n.GetSelectedIndex())
	assert.Equal(t, 0, n.GetViewportOffset())
}
