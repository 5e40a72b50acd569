package chat

import "github.com/atotto/clipboard"

var writeClipboard = clipboard.WriteAll
