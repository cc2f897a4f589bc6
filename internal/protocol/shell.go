package protocol

import "fmt"

// Shells lists the shells gw can print a wrapper for.
var Shells = []string{"bash", "zsh", "fish"}

// ShellInit returns the wrapper function for shell.
func ShellInit(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashInit, nil
	case "zsh":
		return zshInit, nil
	case "fish":
		return fishInit, nil
	}
	return "", fmt.Errorf("unsupported shell: %s (supported: %v)", shell, Shells)
}

// EnvWrapped is set by the wrappers when they run gw for its payload.
const EnvWrapped = "GW_WRAPPED"

const posixBody = `gw() {
    case "${1-}" in
        ""|-h|--help|--version|help|list|ls|init|config|version|completion|remove-worktrees|__complete|__completeNoDesc)
            command gw "$@"
            return
            ;;
    esac

    local out rc line dir="" payload=""
    out="$(GW_WRAPPED=1 command gw "$@")"
    rc=$?

    while IFS= read -r line; do
        case "$line" in
            DELETE_AFTER_CD:*|CLEAN_WORKTREES:*) payload="$line" ;;
            /*) dir="$line" ;;
            "") ;;
            *) printf '%s\n' "$line" ;;
        esac
    done <<GW_EOF
$out
GW_EOF

    if [ -n "$dir" ]; then
        cd "$dir" || return 1
    fi
    if [ -n "$payload" ]; then
        command gw remove-worktrees --payload "$payload" || rc=$?
    fi
    return $rc
}
`

const bashInit = `# gw shell wrapper
# Install: eval "$(gw init bash)"

` + posixBody

const zshInit = `# gw shell wrapper
# Install: eval "$(gw init zsh)"

` + posixBody

const fishInit = `# gw shell wrapper
# Install: gw init fish | source
# Or add to config.fish: gw init fish | source

function gw --wraps=gw --description 'Flat sibling git worktree manager'
    switch "$argv[1]"
        case '' -h --help --version help list ls init config version completion remove-worktrees __complete __completeNoDesc
            command gw $argv
            return $status
    end

    set -l out (GW_WRAPPED=1 command gw $argv)
    set -l rc $status
    set -l dir ''
    set -l payload ''

    for line in $out
        switch $line
            case 'DELETE_AFTER_CD:*' 'CLEAN_WORKTREES:*'
                set payload $line
            case '/*'
                set dir $line
            case '*'
                test -n "$line"; and echo $line
        end
    end

    if test -n "$dir"
        cd $dir; or return 1
    end
    if test -n "$payload"
        command gw remove-worktrees --payload $payload; or set rc $status
    end
    return $rc
end
`
