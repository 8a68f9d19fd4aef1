package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// GenericFailure is shown when a command fails before its first reply.
const GenericFailure = "Something went wrong, please retry."

// helpEmbedColor is Discord's green.
const helpEmbedColor = 0x2ecc71

func monitoredAnnouncement(topic, author, opponent string) string {
	return fmt.Sprintf(
		`A debate session with the topic "%s" and participants %s and %s has been created. `+
			`Proceedings have moved to a private thread. Please continue the discussion there.`,
		topic, author, opponent,
	)
}

func monitoredWelcome(topic, author, opponent string) string {
	return fmt.Sprintf(`Welcome to the private debate room.
The topic for this discussion is **"%s"**
I am monitoring this chat to ensure logical consistency. The goal is truth, not victory.
Use `+"`/argue`"+` to test the strength of your argument before you post it.
Please proceed to have a healthy discussion, %s and %s.`, topic, author, opponent)
}

func adversarialAnnouncement(topic, author string) string {
	return fmt.Sprintf(
		`A debate session with the topic "%s" and participant %s has been created and moved to a private thread. `+
			`Logos has entered the debate as a participant.`,
		topic, author,
	)
}

func adversarialWelcome(topic string) string {
	return fmt.Sprintf(`I am ready.
The topic for this discussion is **"%s"**
I am no longer a referee, I am your opponent for this debate. Standard assistance tools like `+"`/argue`"+` are still available for this session.
_State your opening premise._`, topic)
}

func simulationAnnouncement(topic, persona1, persona2 string) string {
	return fmt.Sprintf(
		`A public thread has been created for the topic: "%s" between the AI personas **%s** and **%s**`,
		topic, persona1, persona2,
	)
}

func simulationIntro(topic, persona1, persona2 string) string {
	return fmt.Sprintf(
		`This is a public thread dedicated to the debate on the topic: "%s". The AI personas engaging in this debate are %s and %s.`,
		topic, persona1, persona2,
	)
}

// helpEmbed is the static user guide returned by /help.
func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Logos User Guide",
		Description: `**Overview**
Logos is a Discord bot designed to analyze arguments, detect logical fallacies, and facilitate structured discourse.

**Purpose**
* Improve argument quality through direct feedback
* Monitor discussions for logical errors
* Simulate debates between opposing viewpoints

**Getting Started**
Refer to the command list and protocol descriptions below.

- ` + "`/debate [member] [topic]`" + ` : the main command to debate a user and having Logos monitor the discussion. Logos automatically creates a private thread for this discussion.
- ` + "`/argue [your argument]`" + `: use this command inside the debate room to validate your argument or optimize your logic
- ` + "`/simulate [persona A] [persona B] [topic]`" + `: initiates an automated proxy debate between two AI personas in a public thread`,
		Color: helpEmbedColor,
	}
}
