package filetransfer

import (
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/item"
)

// Command is a unit of work for the manager. The set of commands is closed.
type Command interface {
	isCommand()
}

// ItemCommand delivers an item received from Location.
type ItemCommand struct {
	Location id.LocationID
	Item     item.FileTransferItem
}

// ActionCommand delivers a local request.
type ActionCommand struct {
	Action Action
}

func (ItemCommand) isCommand()   {}
func (ActionCommand) isCommand() {}

// Action is a local request to the manager. The set of actions is closed.
type Action interface {
	isAction()
}

// DownloadAction starts downloading a file. Sources are optional initial
// peers to fetch from.
type DownloadAction struct {
	Hash    id.Sha1Sum
	Size    uint64
	Name    string
	Sources []id.LocationID
}

// RemoveDownloadAction cancels a download.
type RemoveDownloadAction struct {
	Hash id.Sha1Sum
}

// ShareAction seeds a complete local file.
type ShareAction struct {
	Hash id.Sha1Sum
	Path string
}

// AddSourceAction registers a peer holding the file.
type AddSourceAction struct {
	Hash     id.Sha1Sum
	Location id.LocationID
}

// RemoveSourceAction forgets a peer.
type RemoveSourceAction struct {
	Hash     id.Sha1Sum
	Location id.LocationID
}

// StatusAction asks for a snapshot of the downloads. Reply must be buffered.
type StatusAction struct {
	Reply chan<- []DownloadStatus
}

func (DownloadAction) isAction()       {}
func (RemoveDownloadAction) isAction() {}
func (ShareAction) isAction()          {}
func (AddSourceAction) isAction()      {}
func (RemoveSourceAction) isAction()   {}
func (StatusAction) isAction()         {}

// DownloadStatus is a snapshot of one download.
type DownloadStatus struct {
	Hash            id.Sha1Sum
	Size            uint64
	Name            string
	CompletedChunks uint
	TotalChunks     uint
	Peers           []id.LocationID
}
