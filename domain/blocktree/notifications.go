// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocktree

import (
	"fmt"

	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
)

// NotificationType represents the type of a notification message.
type NotificationType int

// NotificationCallback is used for a caller to provide a callback for
// notifications about various block tree events.
type NotificationCallback func(*Notification)

// Constants for the type of a notification message.
const (
	// NTBlockAdded indicates the associated block was added to the tree.
	NTBlockAdded NotificationType = iota

	// NTTipChanged indicates that the tip moved to a new node.
	NTTipChanged
)

// notificationTypeStrings is a map of notification types back to their constant
// names for pretty printing.
var notificationTypeStrings = map[NotificationType]string{
	NTBlockAdded: "NTBlockAdded",
	NTTipChanged: "NTTipChanged",
}

// String returns the NotificationType in human-readable form.
func (n NotificationType) String() string {
	if s, ok := notificationTypeStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Notification Type (%d)", int(n))
}

// Notification defines notification that is sent to the caller via the callback
// function provided during the call to Subscribe and consists of a notification type
// as well as associated data that depends on the type as follows:
//   - NTBlockAdded:  *BlockAddedNotificationData
//   - NTTipChanged:  *TipChangedNotificationData
type Notification struct {
	Type NotificationType
	Data interface{}
}

// BlockAddedNotificationData defines data to be sent along with a BlockAdded
// notification
type BlockAddedNotificationData struct {
	Block *externalapi.DomainBlock
	Node  *blocknode.Node
}

// TipChangedNotificationData defines data to be sent along with a
// TipChanged notification
type TipChangedNotificationData struct {
	OldTip *blocknode.Node
	NewTip *blocknode.Node
}

// Subscribe to block tree notifications. Registers a callback to be executed
// when various events take place. See the documentation on Notification and
// NotificationType for details on the types and contents of notifications.
// Callbacks run on the goroutine that added the block, after the tree lock
// was released, in subscription order.
func (bt *BlockTree) Subscribe(callback NotificationCallback) {
	bt.notificationsLock.Lock()
	defer bt.notificationsLock.Unlock()
	bt.notifications = append(bt.notifications, callback)
}

// sendNotifications sends the given notifications to all subscribers.
// It must not be called with the tree lock held.
func (bt *BlockTree) sendNotifications(notifications []*Notification) {
	bt.notificationsLock.RLock()
	defer bt.notificationsLock.RUnlock()
	for _, notification := range notifications {
		for _, callback := range bt.notifications {
			callback(notification)
		}
	}
}
