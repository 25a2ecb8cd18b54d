package main

// Short messages (one-liners)
const (
	MsgRootShort = "Bootstrap a new machine: shell, dotfiles and agent tooling"
	MsgRootLong  = `rigup sets up a development machine from a configs repository: it
installs oh-my-zsh with plugins, the agent CLI, and deploys dotfiles
as symlinks with layered overrides and automatic backups.`

	MsgListShort      = "List components and whether they are installed"
	MsgInstallShort   = "Install one component, or all of them"
	MsgUpdateShort    = "Update an installed component"
	MsgUninstallShort = "Uninstall a component"
	MsgStatusShort    = "Show deployment status of managed dotfiles"
	MsgDiffShort      = "Show content drift for an unsynced dotfile"
	MsgDocsShort      = "Display documentation topics"
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Configs repository root (defaults to $RIGUP_CONFIGS_ROOT)"
	MsgFlagFormat  = "Output format: text or yaml"
)
