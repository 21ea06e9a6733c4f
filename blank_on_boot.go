//go:build blankonboot

package bootfb

const blankOnBoot = true
