// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/tgbridge/internal/errors"
)

const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for tgbridge
# Installation:
#   source <(tgbridge completion bash)

_tgbridge_completion() {
    local cur prev commands
    commands="init rewrite query status completion"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--config --json --no-color --quiet --verbose --version" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        init)
            COMPREPLY=( $(compgen -W "--force --uri --username --password --graph --timeout --verify-connection" -- ${cur}) )
            ;;
        rewrite)
            COMPREPLY=( $(compgen -W "--params --params-json" -- ${cur}) )
            ;;
        query)
            if [[ ${prev} == "--shape" ]] ; then
                COMPREPLY=( $(compgen -W "row graph graph-row rest default" -- ${cur}) )
                return 0
            fi
            COMPREPLY=( $(compgen -W "--shape --graph --timeout --params --params-json" -- ${cur}) )
            ;;
        status)
            COMPREPLY=( $(compgen -W "--offline" -- ${cur}) )
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _tgbridge_completion tgbridge
`

const zshCompletionTemplate = `#compdef tgbridge

# Zsh completion script for tgbridge
# Installation:
#   tgbridge completion zsh > "${fpath[1]}/_tgbridge"

_tgbridge() {
    local -a commands
    commands=(
        'init:Create .tgbridge/config.yaml'
        'rewrite:Print the literal text a statement is sent as'
        'query:Run a statement and print the decoded results'
        'status:Show configuration and check the engine'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .tgbridge/config.yaml]:config file:_files -g "*.yaml"' \
        '--json[Output as JSON]' \
        '--no-color[Disable colored output]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress informational output]' \
        '*'{-v,--verbose}'[Increase log verbosity]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                init)
                    _arguments \
                        '--force[Overwrite existing configuration]' \
                        '--uri[Engine URI]:uri:' \
                        '--username[Engine user]:user:' \
                        '--password[Engine password]:password:' \
                        '--graph[Target graph]:graph:' \
                        '--timeout[Per-call timeout in seconds]:seconds:' \
                        '--verify-connection[Connect when the driver starts]'
                    ;;
                rewrite)
                    _arguments \
                        '(-p --params)'{-p,--params}'[Parameter file]:file:_files' \
                        '--params-json[Parameters as JSON]:json:' \
                        '1:statement:'
                    ;;
                query)
                    _arguments \
                        '--shape[Result shape]:shape:(row graph graph-row rest default)' \
                        '--graph[Target graph]:graph:' \
                        '--timeout[Per-call timeout]:duration:' \
                        '(-p --params)'{-p,--params}'[Parameter file]:file:_files' \
                        '--params-json[Parameters as JSON]:json:' \
                        '*:statement:'
                    ;;
                status)
                    _arguments \
                        '--offline[Do not contact the engine]'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_tgbridge "$@"
`

const fishCompletionTemplate = `# Fish completion script for tgbridge
# Installation:
#   tgbridge completion fish > ~/.config/fish/completions/tgbridge.fish

complete -c tgbridge -f -n "__fish_use_subcommand" -a "init" -d "Create .tgbridge/config.yaml"
complete -c tgbridge -f -n "__fish_use_subcommand" -a "rewrite" -d "Print the literal query text"
complete -c tgbridge -f -n "__fish_use_subcommand" -a "query" -d "Run a statement"
complete -c tgbridge -f -n "__fish_use_subcommand" -a "status" -d "Show configuration and check the engine"
complete -c tgbridge -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

complete -c tgbridge -l config -d "Path to .tgbridge/config.yaml" -r
complete -c tgbridge -l json -d "Output as JSON"
complete -c tgbridge -l no-color -d "Disable colored output"
complete -c tgbridge -s q -l quiet -d "Suppress informational output"
complete -c tgbridge -s v -l verbose -d "Increase log verbosity"
complete -c tgbridge -l version -d "Show version and exit"

complete -c tgbridge -n "__fish_seen_subcommand_from init" -l force -d "Overwrite existing configuration"
complete -c tgbridge -n "__fish_seen_subcommand_from init" -l uri -d "Engine URI" -r
complete -c tgbridge -n "__fish_seen_subcommand_from init" -l graph -d "Target graph" -r
complete -c tgbridge -n "__fish_seen_subcommand_from rewrite query" -s p -l params -d "Parameter file" -r
complete -c tgbridge -n "__fish_seen_subcommand_from rewrite query" -l params-json -d "Parameters as JSON" -r
complete -c tgbridge -n "__fish_seen_subcommand_from query" -l shape -d "Result shape" -xa "row graph graph-row rest default"
complete -c tgbridge -n "__fish_seen_subcommand_from query" -l graph -d "Target graph" -r
complete -c tgbridge -n "__fish_seen_subcommand_from query" -l timeout -d "Per-call timeout" -r
complete -c tgbridge -n "__fish_seen_subcommand_from status" -l offline -d "Do not contact the engine"
complete -c tgbridge -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`

// runCompletion prints the completion script for the named shell.
func runCompletion(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tgbridge completion <bash|zsh|fish>

Bash:
  source <(tgbridge completion bash)

Zsh:
  echo "autoload -U compinit; compinit" >> ~/.zshrc
  tgbridge completion zsh > "${fpath[1]}/_tgbridge"

Fish:
  tgbridge completion fish > ~/.config/fish/completions/tgbridge.fish
`)
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'tgbridge completion bash', 'tgbridge completion zsh', or 'tgbridge completion fish'",
		)
	}

	switch shell := fs.Arg(0); shell {
	case "bash":
		fmt.Fprint(stdout, bashCompletionTemplate)
	case "zsh":
		fmt.Fprint(stdout, zshCompletionTemplate)
	case "fish":
		fmt.Fprint(stdout, fishCompletionTemplate)
	default:
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'tgbridge completion bash', 'tgbridge completion zsh', or 'tgbridge completion fish'",
		)
	}
	return nil
}
