package nav

import "unicode"

// Command is a named dashboard command.
type Command int

const (
	CmdNone Command = iota
	CmdAdd
	CmdAbout
	CmdDelete
	CmdRefresh
	CmdSetup
	CmdIncrease
	CmdDecrease
	CmdOn
	CmdOff
	CmdQuit
)

var commandNames = map[Command]string{
	CmdAdd:      "Add",
	CmdAbout:    "About",
	CmdDelete:   "Delete",
	CmdRefresh:  "Refresh",
	CmdSetup:    "Setup",
	CmdIncrease: "Increase",
	CmdDecrease: "Decrease",
	CmdOn:       "On",
	CmdOff:      "Off",
	CmdQuit:     "Quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "None"
}

// Mnemonic binds a key to a command.
type Mnemonic struct {
	Key     rune
	Command Command
}

// Mnemonics lists the command keys in menu bar order.
var Mnemonics = []Mnemonic{
	{'A', CmdAdd},
	{'B', CmdAbout},
	{'D', CmdDelete},
	{'R', CmdRefresh},
	{'S', CmdSetup},
	{'+', CmdIncrease},
	{'-', CmdDecrease},
	{'1', CmdOn},
	{'0', CmdOff},
	{'Q', CmdQuit},
}

// Resolve maps a key to its command, ignoring case.
func Resolve(r rune) (Command, bool) {
	r = unicode.ToUpper(r)
	for _, m := range Mnemonics {
		if m.Key == r {
			return m.Command, true
		}
	}
	return CmdNone, false
}
