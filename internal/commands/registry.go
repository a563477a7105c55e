// /internal/commands/registry.go
package commands

import (
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandclient/internal/client"
)

// Context is what a command's Run receives after it matched.
type Context struct {
	Client  *client.Client
	Message *discordgo.MessageCreate
	Prefix  string
}

type Command struct {
	Sort        int
	Name        string
	Description string
	Category    string

	// Response is sent before Run, if set.
	Response client.Response
	Run      func(ctx *Context) error
}

var commandRegistry = map[string]*Command{}

func Register(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

// All returns the registered commands ordered by Sort, then Name.
func All() []*Command {
	list := make([]*Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Sort != list[j].Sort {
			return list[i].Sort < list[j].Sort
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// Install registers every command on c as a prefix command.
func Install(c *client.Client) {
	for _, cmd := range All() {
		c.RegisterCommand(cmd.Name, cmd.Response, callback(c, cmd))
	}
}

func callback(c *client.Client, cmd *Command) client.CommandFunc {
	if cmd.Run == nil {
		return nil
	}
	return func(m *discordgo.MessageCreate, prefix string) error {
		return cmd.Run(&Context{Client: c, Message: m, Prefix: prefix})
	}
}
