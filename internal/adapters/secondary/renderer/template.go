package renderer

import (
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// newTemplateFuncs creates the template function map shared by the slide and
// page templates.
func newTemplateFuncs() template.FuncMap {
	titleCaser := cases.Title(language.Und)
	return template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s) // #nosec G203 - intentional safe HTML template function
		},
		"title": titleCaser.String,
	}
}

// slideTemplate renders one slide's content fragment. Fragments carry no
// inline styles; box geometry and styling live in generated CSS rules keyed
// by element id.
const slideTemplate = `<div class="slide-content layout-{{.Layout}}">
{{- if eq .Layout "title"}}
    <h1 class="slide-title">{{.Title}}</h1>
    {{- if .Subtitle}}
    <p class="slide-subtitle">{{.Subtitle}}</p>
    {{- end}}
{{- else}}
    <h2 class="slide-title">{{.Title}}</h2>
{{- end}}
{{- if .Items}}
    <ul class="slide-body">
    {{- range .Items}}
        <li class="level-{{.Level}}">{{.Text}}</li>
    {{- end}}
    </ul>
{{- end}}
{{- range .Boxes}}
    <pre id="{{.ID}}" class="code-box">{{.Text}}</pre>
{{- end}}
</div>`

// pageTemplate is the standalone presentation document: embedded styles,
// generated geometry rules, navigation script, and a live-reload hook that
// stays inert when the file is opened from disk.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    {{if .Author}}<meta name="author" content="{{.Author}}">{{end}}
    <meta name="generator" content="deckgen">

    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.5;
            color: #333;
            background: #f5f5f5;
            overflow: hidden;
        }

        .deck {
            max-width: 1200px;
            margin: 0 auto;
            position: relative;
            height: 100vh;
        }

        .slide {
            background: white;
            margin: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            position: absolute;
            width: calc(100% - 40px);
            opacity: 0;
            transform: translateX(100%);
            transition: all 0.4s cubic-bezier(0.4, 0.0, 0.2, 1);
            z-index: 1;
            overflow: hidden;
        }

        .slide.active {
            opacity: 1;
            transform: translateX(0);
            z-index: 2;
        }

        .slide.prev {
            transform: translateX(-100%);
        }

        .slide-content {
            position: absolute;
            inset: 0;
            padding: 5% 6%;
        }

        .layout-title {
            display: flex;
            flex-direction: column;
            justify-content: center;
            text-align: center;
        }

        .layout-title .slide-title {
            font-size: 3em;
            color: #2c3e50;
        }

        .slide-subtitle {
            font-size: 1.5em;
            color: #666;
            margin-top: 0.5em;
        }

        .layout-section .slide-title,
        .layout-content .slide-title {
            font-size: 2.2em;
            color: #34495e;
            margin-bottom: 0.6em;
        }

        .layout-section {
            display: flex;
            flex-direction: column;
            justify-content: center;
        }

        .slide-body {
            list-style: disc;
            margin-left: 1.5em;
        }

        .slide-body li {
            font-size: 1.3em;
            margin-bottom: 0.4em;
        }

        .slide-body li.level-1 {
            list-style: circle;
            margin-left: 1.5em;
            font-size: 1.1em;
        }

        .code-box {
            position: absolute;
            margin: 0;
            padding: 0.6em;
            border: 1px solid #ddd;
            border-radius: 4px;
            overflow: auto;
            font-family: 'Courier New', monospace;
        }

        .controls {
            position: fixed;
            bottom: 20px;
            right: 20px;
            display: flex;
            gap: 10px;
            z-index: 100;
        }

        .controls button {
            padding: 10px 20px;
            font-size: 16px;
            background: #3498db;
            color: white;
            border: none;
            border-radius: 4px;
            cursor: pointer;
        }

        .controls button:hover {
            background: #2980b9;
        }

        .controls button:disabled {
            background: #95a5a6;
            cursor: not-allowed;
        }

        .slide-number {
            position: fixed;
            bottom: 20px;
            left: 20px;
            font-size: 14px;
            color: #666;
            z-index: 100;
        }

        .metadata {
            position: fixed;
            top: 20px;
            right: 20px;
            font-size: 14px;
            color: #666;
            text-align: right;
            z-index: 100;
        }

        .progress-bar {
            position: fixed;
            top: 0;
            left: 0;
            right: 0;
            height: 4px;
            background: rgba(0, 0, 0, 0.1);
            z-index: 1000;
        }

        .progress-bar-fill {
            height: 100%;
            background: linear-gradient(90deg, #3498db, #2ecc71);
            transition: width 0.3s ease;
            width: 0%;
        }

        .outline {
            position: fixed;
            top: 0;
            left: 0;
            bottom: 0;
            width: 280px;
            background: white;
            box-shadow: 2px 0 10px rgba(0,0,0,0.15);
            padding: 20px;
            overflow-y: auto;
            z-index: 200;
        }

        .outline ol {
            list-style: none;
        }

        .outline li {
            padding: 8px 10px;
            border-radius: 4px;
            cursor: pointer;
            font-size: 14px;
        }

        .outline li:hover {
            background: #f0f0f0;
        }

        .outline li.current {
            background: #3498db;
            color: white;
        }

        .outline-kind {
            display: block;
            font-size: 11px;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: #999;
        }

        .outline li.current .outline-kind {
            color: #d6eaf8;
        }

        @media print {
            .controls,
            .slide-number,
            .metadata,
            .progress-bar,
            .outline {
                display: none;
            }

            .slide {
                page-break-after: always;
                position: relative !important;
                opacity: 1 !important;
                transform: none !important;
                box-shadow: none;
                margin: 0;
                width: 100% !important;
            }
        }

        @media (max-width: 768px) {
            .slide-content {
                padding: 6% 5%;
            }

            .layout-title .slide-title {
                font-size: 2em;
            }

            .layout-section .slide-title,
            .layout-content .slide-title {
                font-size: 1.6em;
            }

            .slide-body li {
                font-size: 1em;
            }
        }

{{.GeneratedCSS}}
    </style>
</head>
<body>
    <div class="deck">
        <div class="progress-bar">
            <div class="progress-bar-fill"></div>
        </div>

        <div class="metadata">
            {{if .Author}}<div>{{.Author}}</div>{{end}}
            {{if .Date}}<div>{{.Date}}</div>{{end}}
        </div>

        {{range .Slides}}
        <section class="slide" data-index="{{.Index}}">
            {{.HTML | safeHTML}}
        </section>
        {{end}}

        <nav class="outline" id="outline" hidden>
            <ol>
            {{range .Slides}}
                <li data-target="{{.Index}}">
                    <span class="outline-kind">{{title .Label}}</span>
                    {{.Title}}
                </li>
            {{end}}
            </ol>
        </nav>

        <div class="controls">
            <button id="outline-toggle">Outline</button>
            <button id="prev">Previous</button>
            <button id="next">Next</button>
            <button id="fullscreen">Fullscreen</button>
        </div>

        <div class="slide-number">
            <span id="current-slide">1</span> / <span id="total-slides">{{.SlideCount}}</span>
        </div>
    </div>

    <script>
        (function() {
            'use strict';

            let currentSlide = 0;
            const slides = document.querySelectorAll('.slide');
            const outlineItems = document.querySelectorAll('.outline li');
            const totalSlides = slides.length;

            function showSlide(n) {
                currentSlide = Math.min(Math.max(n, 0), totalSlides - 1);

                slides.forEach((slide, index) => {
                    slide.classList.remove('active', 'prev');
                    if (index === currentSlide) {
                        slide.classList.add('active');
                    } else if (index < currentSlide) {
                        slide.classList.add('prev');
                    }
                });

                outlineItems.forEach((item, index) => {
                    item.classList.toggle('current', index === currentSlide);
                });

                updateSlideCounter();
                updateButtonStates();
                updateProgressBar();
            }

            function nextSlide() { showSlide(currentSlide + 1); }
            function previousSlide() { showSlide(currentSlide - 1); }

            function updateSlideCounter() {
                document.getElementById('current-slide').textContent = currentSlide + 1;
            }

            function updateButtonStates() {
                document.getElementById('prev').disabled = currentSlide === 0;
                document.getElementById('next').disabled = currentSlide === totalSlides - 1;
            }

            function updateProgressBar() {
                const fill = document.querySelector('.progress-bar-fill');
                const progress = totalSlides > 1 ? (currentSlide / (totalSlides - 1)) * 100 : 0;
                fill.style.width = progress + '%';
            }

            function toggleOutline() {
                const outline = document.getElementById('outline');
                outline.hidden = !outline.hidden;
            }

            function toggleFullscreen() {
                if (!document.fullscreenElement) {
                    document.documentElement.requestFullscreen();
                } else if (document.exitFullscreen) {
                    document.exitFullscreen();
                }
            }

            document.getElementById('prev').addEventListener('click', previousSlide);
            document.getElementById('next').addEventListener('click', nextSlide);
            document.getElementById('fullscreen').addEventListener('click', toggleFullscreen);
            document.getElementById('outline-toggle').addEventListener('click', toggleOutline);

            outlineItems.forEach(item => {
                item.addEventListener('click', () => {
                    showSlide(parseInt(item.dataset.target, 10));
                });
            });

            document.addEventListener('keydown', function(e) {
                switch(e.key) {
                    case 'ArrowRight':
                    case ' ':
                        e.preventDefault();
                        nextSlide();
                        break;
                    case 'ArrowLeft':
                        e.preventDefault();
                        previousSlide();
                        break;
                    case 'Home':
                        e.preventDefault();
                        showSlide(0);
                        break;
                    case 'End':
                        e.preventDefault();
                        showSlide(totalSlides - 1);
                        break;
                    case 'o':
                    case 'O':
                        toggleOutline();
                        break;
                    case 'f':
                    case 'F':
                        toggleFullscreen();
                        break;
                }
            });

            // Live reload when served by deckgen; inert for files opened
            // from disk.
            function connectLiveReload() {
                if (!location.host) {
                    return;
                }

                let ws;
                try {
                    const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
                    ws = new WebSocket(scheme + location.host + '/ws');
                } catch (e) {
                    return;
                }

                ws.onmessage = function(evt) {
                    try {
                        const msg = JSON.parse(evt.data);
                        if (msg.type === 'reload') {
                            location.reload();
                        } else if (msg.type === 'error') {
                            console.warn('deckgen:', msg.data);
                        }
                    } catch (e) {
                        // Ignore malformed frames.
                    }
                };

                ws.onclose = function() {
                    setTimeout(connectLiveReload, 2000);
                };
            }

            connectLiveReload();
            showSlide(0);
        })();
    </script>
</body>
</html>`
